package resumes

import (
	"time"

	"resume-optimizer/resume/model"
)

// Resume is a user's resume document plus the latest optimization output.
type Resume struct {
	ID                string             `json:"id"`
	UserID            string             `json:"user"`
	Title             string             `json:"title"`
	OriginalContent   model.Content      `json:"originalContent"`
	OptimizedContent  *model.Content     `json:"optimizedContent"`
	JobDescription    *string            `json:"jobDescription"`
	OptimizationScore *int               `json:"optimizationScore"`
	AISuggestions     []model.Suggestion `json:"aiSuggestions"`
	Keywords          []string           `json:"keywords"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// Summary is the list view of a Resume without the large AI-derived fields.
type Summary struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user"`
	Title             string        `json:"title"`
	OriginalContent   model.Content `json:"originalContent"`
	JobDescription    *string       `json:"jobDescription"`
	OptimizationScore *int          `json:"optimizationScore"`
	Keywords          []string      `json:"keywords"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Summary returns the list view of r.
func (r Resume) Summary() Summary {
	return Summary{
		ID:                r.ID,
		UserID:            r.UserID,
		Title:             r.Title,
		OriginalContent:   r.OriginalContent,
		JobDescription:    r.JobDescription,
		OptimizationScore: r.OptimizationScore,
		Keywords:          r.Keywords,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (r Resume) normalize() Resume {
	r.OriginalContent = r.OriginalContent.Normalize()
	if r.OptimizedContent != nil {
		optimized := r.OptimizedContent.Normalize()
		r.OptimizedContent = &optimized
	}
	r.AISuggestions = model.NormalizeSuggestions(r.AISuggestions)
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
	return r
}

func (r Resume) clone() Resume {
	out := r.normalize()
	if r.JobDescription != nil {
		jd := *r.JobDescription
		out.JobDescription = &jd
	}
	if r.OptimizationScore != nil {
		score := *r.OptimizationScore
		out.OptimizationScore = &score
	}
	out.Keywords = append([]string{}, r.Keywords...)
	return out
}
