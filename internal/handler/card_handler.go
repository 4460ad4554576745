package handler

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	boards *service.BoardService
}

func NewCardHandler(boards *service.BoardService) *CardHandler {
	return &CardHandler{boards: boards}
}

type CreateCardRequest struct {
	Title        string                 `json:"title" binding:"required"`
	Description  string                 `json:"description"`
	ListID       string                 `json:"list_id" binding:"required"`
	BoardID      string                 `json:"board_id" binding:"required"`
	Position     int                    `json:"position"`
	AssignedTo   []string               `json:"assigned_to"`
	Labels       []string               `json:"labels"`
	DueDate      *time.Time             `json:"due_date"`
	Priority     string                 `json:"priority" binding:"omitempty,oneof=low medium high"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// UpdateCardRequest is a partial update: nil fields are left untouched.
type UpdateCardRequest struct {
	Title        *string                `json:"title"`
	Description  *string                `json:"description"`
	ListID       *string                `json:"list_id"`
	Position     *int                   `json:"position"`
	AssignedTo   []string               `json:"assigned_to"`
	Labels       []string               `json:"labels"`
	DueDate      *time.Time             `json:"due_date"`
	Priority     *string                `json:"priority" binding:"omitempty,oneof=low medium high"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	listID, err := uuid.Parse(req.ListID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
		return
	}

	card, err := h.boards.CreateCard(c.Request.Context(), userID, service.CardCreate{
		Title:        req.Title,
		Description:  req.Description,
		ListID:       listID,
		BoardID:      boardID,
		Position:     req.Position,
		AssignedTo:   req.AssignedTo,
		Labels:       req.Labels,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) GetByBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("board_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	cards, err := h.boards.CardsForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := service.CardPatch{
		Title:        req.Title,
		Description:  req.Description,
		Position:     req.Position,
		AssignedTo:   req.AssignedTo,
		Labels:       req.Labels,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		CustomFields: req.CustomFields,
	}
	if req.ListID != nil {
		listID, err := uuid.Parse(*req.ListID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list ID format"})
			return
		}
		patch.ListID = &listID
	}

	card, err := h.boards.UpdateCard(c.Request.Context(), userID, cardID, patch)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	if err := h.boards.DeleteCard(c.Request.Context(), userID, cardID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}

// Inbox returns the caller's cards across every board they belong to, most
// recent first.
func (h *CardHandler) Inbox(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cards, err := h.boards.Inbox(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inbox"})
		return
	}

	c.JSON(http.StatusOK, cards)
}
