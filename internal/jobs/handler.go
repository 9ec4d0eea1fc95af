package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/optimizer"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

const (
	defaultTitle   = "Untitled Job"
	defaultCompany = "Unknown Company"
)

// Analyzer is the part of the optimization client the job routes need.
type Analyzer interface {
	AnalyzeJobDescription(ctx context.Context, jobDescription string) optimizer.JobAnalysis
	GenerateResume(ctx context.Context, userInfo any, jobDescription string) optimizer.GeneratedResume
}

// SavedJob is the echo returned by POST /jobs/save. Nothing is persisted.
type SavedJob struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	UserID      string    `json:"userId"`
	SavedAt     time.Time `json:"savedAt"`
}

type Handler struct {
	AI  Analyzer
	now func() time.Time
}

func NewHandler(ai Analyzer) *Handler {
	return &Handler{AI: ai, now: func() time.Time { return time.Now().UTC() }}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/save", h.save)
	rg.GET("/jobs/saved", h.saved)
	rg.POST("/ai/analyze-job", h.analyzeJob)
	rg.POST("/ai/generate-resume", h.generateResume)
}

type saveRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		respond.Error(c, http.StatusBadRequest, "Job description is required")
		return
	}
	job := SavedJob{
		Title:       orDefault(req.Title, defaultTitle),
		Description: req.Description,
		Company:     orDefault(req.Company, defaultCompany),
		UserID:      middleware.UserIDFromContext(c),
		SavedAt:     h.now(),
	}
	respond.Message(c, http.StatusOK, "Job saved successfully", job)
}

func (h *Handler) saved(c *gin.Context) {
	respond.OK(c, []SavedJob{})
}

type analyzeRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyzeJob(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, "Job description is required")
		return
	}
	respond.OK(c, h.AI.AnalyzeJobDescription(c.Request.Context(), req.JobDescription))
}

type generateRequest struct {
	UserInfo       json.RawMessage `json:"userInfo"`
	JobDescription string          `json:"jobDescription"`
}

func (h *Handler) generateResume(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if missingJSON(req.UserInfo) || strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, "User info and job description are required")
		return
	}
	respond.OK(c, h.AI.GenerateResume(c.Request.Context(), req.UserInfo, req.JobDescription))
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func missingJSON(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	switch trimmed {
	case "", "null", `""`, "false", "0":
		return true
	}
	return false
}
