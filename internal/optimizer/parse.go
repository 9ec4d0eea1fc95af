package optimizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"resume-optimizer/resume/model"
)

// ErrMalformedResponse marks provider output that is not the expected JSON shape.
var ErrMalformedResponse = errors.New("malformed provider response")

// stripCodeFences removes a surrounding markdown code fence such as ```json ... ```.
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func parseObject(raw string) (gjson.Result, error) {
	text := stripCodeFences(raw)
	if !gjson.Valid(text) {
		return gjson.Result{}, fmt.Errorf("%w: not JSON", ErrMalformedResponse)
	}
	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected object", ErrMalformedResponse)
	}
	return parsed, nil
}

func parseOptimization(raw string, input model.Content) (Result, error) {
	parsed, err := parseObject(raw)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Outcome:         OutcomeOptimized,
		OptimizedResume: input,
		Score:           clampScore(parsed.Get("score")),
		Suggestions:     parseSuggestions(parsed.Get("suggestions")),
		Keywords:        model.NormalizeKeywords(stringList(parsed.Get("keywords"))),
	}

	optimized := parsed.Get("optimizedResume")
	switch {
	case !optimized.Exists() || optimized.Type == gjson.Null:
		// keep the input content
	case optimized.IsObject():
		var content model.Content
		if err := json.Unmarshal([]byte(optimized.Raw), &content); err != nil {
			return Result{}, fmt.Errorf("%w: optimizedResume: %v", ErrMalformedResponse, err)
		}
		result.OptimizedResume = content.Normalize()
	default:
		return Result{}, fmt.Errorf("%w: optimizedResume is not an object", ErrMalformedResponse)
	}
	return result, nil
}

func parseAnalysis(raw string) (JobAnalysis, error) {
	parsed, err := parseObject(raw)
	if err != nil {
		return JobAnalysis{}, err
	}
	return JobAnalysis{
		Skills:       stringList(parsed.Get("skills")),
		Requirements: stringList(parsed.Get("requirements")),
		Keywords:     model.NormalizeKeywords(stringList(parsed.Get("keywords"))),
		Summary:      strings.TrimSpace(parsed.Get("summary").String()),
	}, nil
}

func parseSuggestions(value gjson.Result) []model.Suggestion {
	out := []model.Suggestion{}
	if !value.IsArray() {
		return out
	}
	value.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		out = append(out, model.Suggestion{
			Section:   item.Get("section").String(),
			Original:  item.Get("original").String(),
			Optimized: item.Get("optimized").String(),
			Reason:    item.Get("reason").String(),
		})
		return true
	})
	return out
}

func stringList(value gjson.Result) []string {
	out := []string{}
	if !value.IsArray() {
		return out
	}
	for _, item := range value.Array() {
		if text := strings.TrimSpace(item.String()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// clampScore reads a score and bounds it to [0,100]. Missing scores are 0.
func clampScore(value gjson.Result) int {
	if !value.Exists() {
		return 0
	}
	score := int(math.Round(value.Float()))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
