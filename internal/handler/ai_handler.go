package handler

import (
	"fmt"
	"log"
	"net/http"

	"taskboard/internal/ai"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	extractor *ai.Extractor
}

func NewAIHandler(extractor *ai.Extractor) *AIHandler {
	return &AIHandler{extractor: extractor}
}

type ExtractTasksRequest struct {
	Text    string `json:"text" binding:"required"`
	BoardID string `json:"board_id"`
}

// ExtractTasks always answers 200: extraction failures are folded into a
// single low-priority task describing the error instead of blocking the
// user.
func (h *AIHandler) ExtractTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ExtractTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sessionID := fmt.Sprintf("extract_%s", userID)
	tasks, raw, err := h.extractor.Extract(c.Request.Context(), sessionID, req.Text)
	if err != nil {
		log.Printf("AI extraction error: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"tasks": []ai.Task{{
				Title:       "Error extracting tasks",
				Description: err.Error(),
				Priority:    "low",
			}},
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "raw_response": raw})
}
