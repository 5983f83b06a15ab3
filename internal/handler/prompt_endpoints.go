package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wyr-server/internal/models"
)

func (h *PromptHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Family Would You Rather API"})
}

func (h *PromptHandler) hello(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Hello from the backend API!"})
}

// diagnostics reports backend and storage reachability. It is best-effort and
// never fails the HTTP request itself.
func (h *PromptHandler) diagnostics(c *gin.Context) {
	report := h.promptService.Diagnostics(c.Request.Context())
	c.JSON(http.StatusOK, report)
}

func (h *PromptHandler) randomPrompt(c *gin.Context) {
	prompt, err := h.promptService.RandomPrompt(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrPromptNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: "No prompts available"})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt.ToResponse())
}

func (h *PromptHandler) createPrompt(c *gin.Context) {
	var req createPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Error: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errResp)
		return
	}

	prompt, err := h.promptService.CreatePrompt(c.Request.Context(), req.OptionA, req.OptionB, req.Category, req.CreatedBy)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	promptsCreatedTotal.Inc()

	c.JSON(http.StatusOK, prompt.ToResponse())
}

func (h *PromptHandler) vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Error: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errResp)
		return
	}

	prompt, err := h.promptService.Vote(c.Request.Context(), req.PromptID, req.Option)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	votesTotal.WithLabelValues(req.Option).Inc()

	// This is the only read of post-vote state; the counts in the response
	// are fresh as of the atomic increment.
	c.JSON(http.StatusOK, prompt.ToResponse())
}

func (h *PromptHandler) topPrompts(c *gin.Context) {
	limit := int64(10)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errResp := models.ErrorResponse{Error: "Invalid limit: " + raw}
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errResp)
			return
		}
		limit = parsed
	}

	prompts, err := h.promptService.TopPrompts(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]models.PromptResponse, 0, len(prompts))
	for i := range prompts {
		responses = append(responses, prompts[i].ToResponse())
	}

	c.JSON(http.StatusOK, responses)
}
