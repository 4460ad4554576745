package handler

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemberHandler struct {
	boards *service.BoardService
	users  repository.UserRepositoryInterface
}

func NewMemberHandler(boards *service.BoardService, users repository.UserRepositoryInterface) *MemberHandler {
	return &MemberHandler{boards: boards, users: users}
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Add puts a user, looked up by email, into the board's member set. Only
// the board owner may do this.
func (h *MemberHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Emails are stored lowercased at registration.
	req.Email = strings.ToLower(req.Email)

	target, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.boards.AddMember(c.Request.Context(), userID, boardID, target.ID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added successfully"})
}

// Remove takes a user out of the board's member set. Only the board owner
// may do this, and the owner cannot be removed.
func (h *MemberHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	memberID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.boards.RemoveMember(c.Request.Context(), userID, boardID, memberID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		case errors.Is(err, service.ErrCannotRemoveOwner):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Board owner cannot be removed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// List returns the member ids of a board the caller belongs to.
func (h *MemberHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	memberIDs, err := h.boards.BoardMembers(c.Request.Context(), userID, boardID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board members"})
		return
	}

	members := make([]string, len(memberIDs))
	for i, id := range memberIDs {
		members[i] = id.String()
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
