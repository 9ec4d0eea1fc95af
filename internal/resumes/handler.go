package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

const maxBodySize = 1 << 20 // 1MB

const notFoundMessage = "Resume not found or access denied"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.delete)
	rg.POST("/resumes/:id/optimize", h.optimize)
	rg.GET("/resumes/:id/analyze", h.analyze)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	draft, ok := readPatch(c)
	if !ok {
		return
	}
	resume, err := h.Svc.Create(c.Request.Context(), userID, draft)
	if err != nil {
		h.fail(c, err, "Failed to create resume")
		return
	}
	c.Set("resumeId", resume.ID)
	respond.Message(c, http.StatusCreated, "Resume created successfully", resume)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Failed to fetch resumes")
		return
	}
	respond.List(c, items, len(items))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := resumeIDParam(c)

	resume, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.fail(c, err, "Failed to fetch resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := resumeIDParam(c)

	patch, ok := readPatch(c)
	if !ok {
		return
	}
	resume, err := h.Svc.Update(c.Request.Context(), userID, resumeID, patch)
	if err != nil {
		h.fail(c, err, "Failed to update resume")
		return
	}
	respond.Message(c, http.StatusOK, "Resume updated successfully", resume)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := resumeIDParam(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, resumeID); err != nil {
		h.fail(c, err, "Failed to delete resume")
		return
	}
	respond.Message(c, http.StatusOK, "Resume deleted successfully", nil)
}

func (h *Handler) optimize(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := resumeIDParam(c)

	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	resume, err := h.Svc.Optimize(c.Request.Context(), userID, resumeID, req.JobDescription)
	if err != nil {
		h.fail(c, err, "Failed to optimize resume")
		return
	}
	respond.Message(c, http.StatusOK, "Resume optimized successfully", resume)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := resumeIDParam(c)

	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.fail(c, err, "Failed to analyze resume")
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, notFoundMessage)
	default:
		respond.Internal(c, message, err)
	}
}

func readPatch(c *gin.Context) (Patch, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return Patch{}, false
	}
	patch, err := DecodePatch(body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, verr.Message)
		} else {
			respond.Error(c, http.StatusBadRequest, "invalid request body")
		}
		return Patch{}, false
	}
	return patch, true
}

func resumeIDParam(c *gin.Context) string {
	id := c.Param("id")
	c.Set("resumeId", id)
	return id
}
