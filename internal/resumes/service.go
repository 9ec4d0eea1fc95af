package resumes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/events"
	"resume-optimizer/internal/optimizer"
	"resume-optimizer/internal/shared/telemetry"
)

// NoJobDescription is analyzed when a resume was never optimized.
const NoJobDescription = "No job description provided"

// Optimizer is the subset of optimizer.Client the service depends on.
type Optimizer interface {
	Optimize(ctx context.Context, in optimizer.Input) optimizer.Result
	AnalyzeJobDescription(ctx context.Context, jobDescription string) optimizer.JobAnalysis
}

// Service coordinates resume storage and AI optimization for one caller at a time.
type Service struct {
	Repo      Repo
	Optimizer Optimizer
	Events    events.Publisher
	now       func() time.Time
	newID     func() string
}

// NewService constructs a Service. A nil publisher discards events.
func NewService(repo Repo, opt Optimizer, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		Repo:      repo,
		Optimizer: opt,
		Events:    pub,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Create stores a new resume owned by userID built from the draft fields.
func (s *Service) Create(ctx context.Context, userID string, draft Patch) (Resume, error) {
	if err := s.ready(); err != nil {
		return Resume{}, err
	}
	if !draft.Title.Set {
		return Resume{}, invalid("title", "Resume title is required")
	}
	if err := draft.Validate(); err != nil {
		return Resume{}, err
	}

	now := s.now()
	resume := draft.normalize().Apply(Resume{
		ID:        s.newID(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	s.publish(ctx, events.ResumeCreated, resume, false)
	return resume, nil
}

// List returns the summary view of the caller's resumes, newest update first.
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	items, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(items))
	for _, item := range items {
		out = append(out, item.Summary())
	}
	return out, nil
}

// Get returns the full resume.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := s.ready(); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// Update merges patch onto the caller's resume. An empty patch still refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, userID, resumeID string, patch Patch) (Resume, error) {
	if err := s.ready(); err != nil {
		return Resume{}, err
	}
	if err := patch.Validate(); err != nil {
		return Resume{}, err
	}
	resume, err := s.Repo.Update(ctx, userID, resumeID, patch.normalize(), s.now())
	if err != nil {
		return Resume{}, err
	}
	s.publish(ctx, events.ResumeUpdated, resume, false)
	return resume, nil
}

// Delete removes the caller's resume.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, resumeID); err != nil {
		return err
	}
	s.publish(ctx, events.ResumeDeleted, Resume{ID: resumeID, UserID: userID}, false)
	return nil
}

// Optimize runs the resume through the optimizer and stores the result. Provider
// failures never fail the call; the degraded result is stored instead.
func (s *Service) Optimize(ctx context.Context, userID, resumeID, jobDescription string) (Resume, error) {
	if err := s.ready(); err != nil {
		return Resume{}, err
	}
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return Resume{}, invalid("jobDescription", "Job description is required")
	}

	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}

	result := s.Optimizer.Optimize(ctx, optimizer.Input{
		Title:          resume.Title,
		Content:        resume.OriginalContent,
		JobDescription: jobDescription,
	})
	if result.Degraded() {
		telemetry.Info("resume.optimize_degraded", map[string]any{
			"resume_id": resumeID,
			"user_id":   userID,
			"error":     result.Cause,
		})
	}

	optimized := result.OptimizedResume
	score := clampScore(result.Score)
	patch := Patch{
		OptimizedContent:  Assign(&optimized),
		JobDescription:    Assign(&jobDescription),
		OptimizationScore: Assign(&score),
		AISuggestions:     Assign(result.Suggestions),
		Keywords:          Assign(result.Keywords),
	}
	updated, err := s.Repo.Update(ctx, userID, resumeID, patch.normalize(), s.now())
	if err != nil {
		return Resume{}, err
	}
	s.publish(ctx, events.ResumeOptimized, updated, result.Degraded())
	return updated, nil
}

// Analyze extracts job requirements from the resume's last job description.
// Nothing is persisted.
func (s *Service) Analyze(ctx context.Context, userID, resumeID string) (optimizer.JobAnalysis, error) {
	if err := s.ready(); err != nil {
		return optimizer.JobAnalysis{}, err
	}
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return optimizer.JobAnalysis{}, err
	}
	jobDescription := NoJobDescription
	if resume.JobDescription != nil && strings.TrimSpace(*resume.JobDescription) != "" {
		jobDescription = *resume.JobDescription
	}
	return s.Optimizer.AnalyzeJobDescription(ctx, jobDescription), nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Optimizer == nil {
		return errors.New("resumes service not configured")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, resume Resume, degraded bool) {
	if s.Events == nil {
		return
	}
	err := s.Events.Publish(ctx, events.Event{
		Type:       eventType,
		ResumeID:   resume.ID,
		UserID:     resume.UserID,
		OccurredAt: s.now(),
		Degraded:   degraded,
	})
	if err != nil {
		telemetry.Error("resume.event_publish_failed", map[string]any{
			"type":      eventType,
			"resume_id": resume.ID,
			"error":     err,
		})
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
