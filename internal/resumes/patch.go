package resumes

import (
	"strings"

	"resume-optimizer/resume/model"
)

// Field is an optional patch value. Set distinguishes "absent" from a zero or null value.
type Field[T any] struct {
	Set   bool
	Value T
}

// Assign returns a set Field holding v.
func Assign[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Patch lists the client-writable resume fields. Ownership and timestamps are not patchable.
type Patch struct {
	Title             Field[string]
	OriginalContent   Field[model.Content]
	OptimizedContent  Field[*model.Content]
	JobDescription    Field[*string]
	OptimizationScore Field[*int]
	AISuggestions     Field[[]model.Suggestion]
	Keywords          Field[[]string]
}

// Validate checks every set field against the resume constraints. Unset fields
// keep their stored, already valid values, so a valid patch yields a valid resume.
func (p Patch) Validate() error {
	if p.Title.Set && strings.TrimSpace(p.Title.Value) == "" {
		return invalid("title", "Resume title is required")
	}
	if p.OriginalContent.Set {
		if err := p.OriginalContent.Value.Validate(); err != nil {
			return invalid("originalContent", err.Error())
		}
	}
	if p.OptimizedContent.Set && p.OptimizedContent.Value != nil {
		if err := p.OptimizedContent.Value.Validate(); err != nil {
			return invalid("optimizedContent", err.Error())
		}
	}
	if p.OptimizationScore.Set && p.OptimizationScore.Value != nil {
		if score := *p.OptimizationScore.Value; score < 0 || score > 100 {
			return invalid("optimizationScore", "optimizationScore must be between 0 and 100")
		}
	}
	return nil
}

// Apply returns r with every set field replaced.
func (p Patch) Apply(r Resume) Resume {
	if p.Title.Set {
		r.Title = p.Title.Value
	}
	if p.OriginalContent.Set {
		r.OriginalContent = p.OriginalContent.Value
	}
	if p.OptimizedContent.Set {
		r.OptimizedContent = p.OptimizedContent.Value
	}
	if p.JobDescription.Set {
		r.JobDescription = p.JobDescription.Value
	}
	if p.OptimizationScore.Set {
		r.OptimizationScore = p.OptimizationScore.Value
	}
	if p.AISuggestions.Set {
		r.AISuggestions = p.AISuggestions.Value
	}
	if p.Keywords.Set {
		r.Keywords = p.Keywords.Value
	}
	return r.normalize()
}

// normalize trims the title and replaces nil lists so stored and returned
// values agree across repositories.
func (p Patch) normalize() Patch {
	if p.Title.Set {
		p.Title.Value = strings.TrimSpace(p.Title.Value)
	}
	if p.OriginalContent.Set {
		p.OriginalContent.Value = p.OriginalContent.Value.Normalize()
	}
	if p.OptimizedContent.Set && p.OptimizedContent.Value != nil {
		optimized := p.OptimizedContent.Value.Normalize()
		p.OptimizedContent.Value = &optimized
	}
	if p.AISuggestions.Set {
		p.AISuggestions.Value = model.NormalizeSuggestions(p.AISuggestions.Value)
	}
	if p.Keywords.Set {
		p.Keywords.Value = model.NormalizeKeywords(p.Keywords.Value)
	}
	return p
}
