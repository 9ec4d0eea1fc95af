package model

import (
	"fmt"
	"strings"
	"time"
)

// Content is the structured resume document stored as originalContent and
// produced as optimizedContent.
type Content struct {
	PersonalInfo PersonalInfo    `json:"personalInfo"`
	Summary      string          `json:"summary"`
	Experience   []Experience    `json:"experience"`
	Education    []Education     `json:"education"`
	Skills       []SkillCategory `json:"skills"`
	Projects     []Project       `json:"projects"`
}

// PersonalInfo captures contact details.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Experience represents a work history entry.
type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

// Education represents an education entry.
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate,omitempty"`
	GPA            string `json:"gpa"`
}

// SkillCategory groups skills under a category name.
type SkillCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Project represents a notable project.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Suggestion is one AI-proposed change to a resume section.
type Suggestion struct {
	Section   string `json:"section"`
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
	Reason    string `json:"reason"`
}

// Normalize returns a copy that shares no slices with c. Nil lists become
// empty ones so the document always serializes lists as [].
func (c Content) Normalize() Content {
	out := c
	out.Experience = make([]Experience, len(c.Experience))
	for i, exp := range c.Experience {
		exp.Description = nonNil(exp.Description)
		out.Experience[i] = exp
	}
	out.Education = append([]Education{}, c.Education...)
	out.Skills = make([]SkillCategory, len(c.Skills))
	for i, skill := range c.Skills {
		skill.Items = nonNil(skill.Items)
		out.Skills[i] = skill
	}
	out.Projects = make([]Project, len(c.Projects))
	for i, project := range c.Projects {
		project.Technologies = nonNil(project.Technologies)
		out.Projects[i] = project
	}
	return out
}

// Validate checks that every date field parses.
func (c Content) Validate() error {
	for i, exp := range c.Experience {
		if err := validateDateField(exp.StartDate, fmt.Sprintf("experience[%d].startDate", i)); err != nil {
			return err
		}
		if err := validateDateField(exp.EndDate, fmt.Sprintf("experience[%d].endDate", i)); err != nil {
			return err
		}
	}
	for i, edu := range c.Education {
		if err := validateDateField(edu.GraduationDate, fmt.Sprintf("education[%d].graduationDate", i)); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeSuggestions returns a non-nil copy of suggestions.
func NormalizeSuggestions(suggestions []Suggestion) []Suggestion {
	return append([]Suggestion{}, suggestions...)
}

// NormalizeKeywords trims, drops empty and de-duplicates keywords, keeping order.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
	}
	return out
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

func validateDateField(value, field string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%s must be a date (YYYY-MM, YYYY-MM-DD or RFC3339)", field)
}

func nonNil(items []string) []string {
	return append([]string{}, items...)
}
