package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wyr-server/internal/models"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrInvalidPromptID):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: "Invalid prompt_id"}
	case errors.Is(err, models.ErrPromptNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "Prompt not found"}
	case errors.Is(err, models.ErrStorageUnavailable):
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "Database not configured"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
