package resumes

import (
	"bytes"
	"encoding/json"

	"resume-optimizer/resume/model"
)

// DecodePatch reads a JSON object into a Patch. Unknown keys, including id,
// user, createdAt and updatedAt, are ignored. A present null clears nullable fields.
func DecodePatch(body []byte) (Patch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Patch{}, invalid("", "invalid request body")
	}

	var p Patch
	var err error
	if raw, ok := fields["title"]; ok {
		if p.Title, err = decodeValue[string](raw, "title", "title must be a string"); err != nil {
			return Patch{}, err
		}
	}
	if raw, ok := fields["originalContent"]; ok {
		if p.OriginalContent, err = decodeValue[model.Content](raw, "originalContent", "originalContent must be a resume document"); err != nil {
			return Patch{}, err
		}
	}
	if raw, ok := fields["optimizedContent"]; ok {
		if p.OptimizedContent, err = decodeValue[*model.Content](raw, "optimizedContent", "optimizedContent must be a resume document or null"); err != nil {
			return Patch{}, err
		}
	}
	if raw, ok := fields["jobDescription"]; ok {
		if p.JobDescription, err = decodeValue[*string](raw, "jobDescription", "jobDescription must be a string or null"); err != nil {
			return Patch{}, err
		}
	}
	if raw, ok := fields["optimizationScore"]; ok {
		if p.OptimizationScore, err = decodeValue[*int](raw, "optimizationScore", "optimizationScore must be an integer or null"); err != nil {
			return Patch{}, err
		}
	}
	if raw, ok := fields["aiSuggestions"]; ok {
		if p.AISuggestions, err = decodeValue[[]model.Suggestion](raw, "aiSuggestions", "aiSuggestions must be a list"); err != nil {
			return Patch{}, err
		}
	}
	if raw, ok := fields["keywords"]; ok {
		if p.Keywords, err = decodeValue[[]string](raw, "keywords", "keywords must be a list of strings"); err != nil {
			return Patch{}, err
		}
	}
	return p, nil
}

func decodeValue[T any](raw json.RawMessage, field, message string) (Field[T], error) {
	var v T
	if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if err := json.Unmarshal(raw, &v); err != nil {
			return Field[T]{}, invalid(field, message)
		}
	}
	return Assign(v), nil
}

type optimizeRequest struct {
	JobDescription string `json:"jobDescription"`
}
