package handler

import (
	"wyr-server/internal/service"

	"github.com/gin-gonic/gin"
)

// PromptHandler handles the HTTP surface of the voting game.
type PromptHandler struct {
	promptService service.PromptService
}

func NewPromptHandler(promptService service.PromptService) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
	}
}

func (h *PromptHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.root)
	router.GET("/test", h.diagnostics)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/hello", h.hello)
		apiGroup.GET("/prompts/random", h.randomPrompt)
		apiGroup.POST("/prompts", h.createPrompt)
		apiGroup.POST("/votes", h.vote)
		apiGroup.GET("/prompts/top", h.topPrompts)
	}
}
