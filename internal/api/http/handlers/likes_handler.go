package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freelance-directory/internal/api/dto"
	"github.com/spec-kit/freelance-directory/internal/service"
)

// LikesHandler exposes the like counter.
type LikesHandler struct {
	likes *service.LikeService
}

// NewLikesHandler constructs handler.
func NewLikesHandler(likes *service.LikeService) *LikesHandler {
	return &LikesHandler{likes: likes}
}

// Like handles GET /users/:id/like and redirects back to the profile.
func (h *LikesHandler) Like(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	if _, err := h.likes.Increment(c.UserContext(), id); err != nil {
		return mapServiceError(err)
	}
	return c.Redirect("/users/"+id, http.StatusSeeOther)
}

// LikeAPI handles POST /api/users/:id/like and returns the new count.
func (h *LikesHandler) LikeAPI(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	likes, err := h.likes.Increment(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.LikeResponse{Like: likes})
}
