package optimizer

import (
	"context"
	"errors"
	"time"

	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/resume/model"
)

// Token budgets per call kind.
const (
	OptimizeMaxTokens = 1500
	AnalyzeMaxTokens  = 500
)

// Fallback payload values returned when the provider call fails.
const (
	DegradedScore           = 50
	DegradedSuggestionField = "general"
	DegradedReason          = "AI service temporarily unavailable. Please try again."
	DegradedAnalysisSummary = "Analysis unavailable"
)

// DefaultTemperature favors deterministic structured output.
const DefaultTemperature float32 = 0.2

// ErrEmptyResponse is the cause recorded when the provider returns no text.
var ErrEmptyResponse = errors.New("empty provider response")

// Outcome tags a Result as a real optimization or the fallback.
type Outcome string

const (
	OutcomeOptimized Outcome = "optimized"
	OutcomeDegraded  Outcome = "degraded"
)

// Input is the resume material sent for optimization.
type Input struct {
	Title          string
	Content        model.Content
	JobDescription string
}

// Result is the outcome of Optimize. A degraded result is still well formed.
type Result struct {
	Outcome         Outcome
	OptimizedResume model.Content
	Score           int
	Suggestions     []model.Suggestion
	Keywords        []string
	// Cause is the absorbed provider failure for degraded results.
	Cause error
}

// Degraded reports whether the fallback payload was returned.
func (r Result) Degraded() bool {
	return r.Outcome == OutcomeDegraded
}

// JobAnalysis is the structured extraction of a job description.
type JobAnalysis struct {
	Skills       []string `json:"skills"`
	Requirements []string `json:"requirements"`
	Keywords     []string `json:"keywords"`
	Summary      string   `json:"summary"`
	Degraded     bool     `json:"-"`
	Cause        error    `json:"-"`
}

// GeneratedResume is returned by GenerateResume.
type GeneratedResume struct {
	Message        string `json:"message"`
	UserInfo       any    `json:"userInfo"`
	JobDescription string `json:"jobDescription"`
}

// Client talks to an llm.Completer and never surfaces provider failures.
type Client struct {
	Completer   llm.Completer
	Timeout     time.Duration
	Temperature float32
}

// NewClient constructs a Client. A nil completer degrades every call.
func NewClient(completer llm.Completer, timeout time.Duration, temperature float32) *Client {
	if completer == nil {
		completer = llm.PlaceholderClient{}
	}
	if temperature < 0 {
		temperature = DefaultTemperature
	}
	return &Client{Completer: completer, Timeout: timeout, Temperature: temperature}
}

// Optimize asks the provider to rewrite and score the resume against the job description.
func (c *Client) Optimize(ctx context.Context, in Input) Result {
	in.Content = in.Content.Normalize()

	prompt, err := buildOptimizePrompt(in)
	if err != nil {
		return c.degradedResult(in, err)
	}
	raw, err := c.complete(ctx, metrics.OperationOptimize, llm.Request{
		System:      optimizeSystemPrompt,
		User:        prompt,
		Temperature: c.Temperature,
		MaxTokens:   OptimizeMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return c.degradedResult(in, err)
	}
	result, err := parseOptimization(raw, in.Content)
	if err != nil {
		return c.degradedResult(in, err)
	}

	metrics.IncOptimization(false)
	return result
}

// AnalyzeJobDescription extracts skills, requirements and keywords from free text.
func (c *Client) AnalyzeJobDescription(ctx context.Context, jobDescription string) JobAnalysis {
	raw, err := c.complete(ctx, metrics.OperationAnalyzeJob, llm.Request{
		System:      analyzeSystemPrompt,
		User:        buildAnalyzePrompt(jobDescription),
		Temperature: c.Temperature,
		MaxTokens:   AnalyzeMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return c.degradedAnalysis(err)
	}
	analysis, err := parseAnalysis(raw)
	if err != nil {
		return c.degradedAnalysis(err)
	}

	metrics.IncJobAnalysis(false)
	return analysis
}

// GenerateResume is not backed by a provider yet and echoes its input.
func (c *Client) GenerateResume(ctx context.Context, userInfo any, jobDescription string) GeneratedResume {
	_ = ctx
	return GeneratedResume{
		Message:        "Feature coming soon",
		UserInfo:       userInfo,
		JobDescription: jobDescription,
	}
}

func (c *Client) complete(ctx context.Context, operation string, req llm.Request) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := c.Completer.Complete(ctx, req)
	metrics.ObserveLLMDuration(operation, time.Since(start))
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", ErrEmptyResponse
	}
	return raw, nil
}

func (c *Client) degradedResult(in Input, cause error) Result {
	telemetry.Error("optimizer.degraded", map[string]any{
		"operation": "optimize",
		"error":     cause,
	})
	metrics.IncOptimization(true)
	return DegradedResult(in.Content, cause)
}

func (c *Client) degradedAnalysis(cause error) JobAnalysis {
	telemetry.Error("optimizer.degraded", map[string]any{
		"operation": "analyze_job",
		"error":     cause,
	})
	metrics.IncJobAnalysis(true)
	return DegradedAnalysis(cause)
}

// DegradedResult is the fallback returned when optimization fails.
func DegradedResult(content model.Content, cause error) Result {
	return Result{
		Outcome:         OutcomeDegraded,
		OptimizedResume: content.Normalize(),
		Score:           DegradedScore,
		Suggestions: []model.Suggestion{{
			Section:   DegradedSuggestionField,
			Original:  "",
			Optimized: "",
			Reason:    DegradedReason,
		}},
		Keywords: []string{},
		Cause:    cause,
	}
}

// DegradedAnalysis is the fallback returned when job analysis fails.
func DegradedAnalysis(cause error) JobAnalysis {
	return JobAnalysis{
		Skills:       []string{},
		Requirements: []string{},
		Keywords:     []string{},
		Summary:      DegradedAnalysisSummary,
		Degraded:     true,
		Cause:        cause,
	}
}
