package optimizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

const optimizeSystemPrompt = "You are a professional resume optimizer and career coach. Provide responses in valid JSON format only."

const analyzeSystemPrompt = `Extract key information from job descriptions. Return JSON only, shaped as:
{"skills": ["..."], "requirements": ["..."], "keywords": ["..."], "summary": "..."}`

const optimizeSchema = `{
  "optimizedResume": {
    "personalInfo": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": ""},
    "summary": "Optimized summary here",
    "experience": [{"title": "", "company": "", "location": "", "startDate": "YYYY-MM", "endDate": "YYYY-MM", "current": false, "description": ["Optimized bullet point"]}],
    "education": [{"degree": "", "institution": "", "location": "", "graduationDate": "YYYY-MM", "gpa": ""}],
    "skills": [{"category": "", "items": ["skill"]}],
    "projects": [{"title": "", "description": "", "technologies": ["tech"]}]
  },
  "score": 85,
  "suggestions": [
    {"section": "summary", "original": "Original text", "optimized": "Optimized text", "reason": "Improvement reason"}
  ],
  "keywords": ["keyword1", "keyword2"]
}`

func buildOptimizePrompt(in Input) (string, error) {
	resume, err := json.MarshalIndent(in.Content, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode resume: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze this resume and job description, then provide optimization suggestions.\n\n")
	if title := strings.TrimSpace(in.Title); title != "" {
		fmt.Fprintf(&b, "RESUME TITLE:\n%s\n\n", title)
	}
	fmt.Fprintf(&b, "RESUME DATA:\n%s\n\n", resume)
	fmt.Fprintf(&b, "JOB DESCRIPTION:\n%s\n\n", strings.TrimSpace(in.JobDescription))
	b.WriteString("Return a JSON object with this structure. optimizedResume must keep the same fields as RESUME DATA; ")
	b.WriteString("score is an integer from 0 to 100 rating how well the resume matches the job:\n")
	b.WriteString(optimizeSchema)
	b.WriteString("\n\nImportant: Only return valid JSON, no other text.")
	return b.String(), nil
}

func buildAnalyzePrompt(jobDescription string) string {
	return "Analyze this job description: " + strings.TrimSpace(jobDescription)
}

