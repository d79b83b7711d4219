package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freelance-directory/internal/api/dto"
	"github.com/spec-kit/freelance-directory/internal/service"
)

// DirectoryHandler serves the public profile listings.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Index handles GET /users: the newest profiles plus the most liked ones.
func (h *DirectoryHandler) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page, err := h.directory.Recent(ctx, c.QueryInt("page", 1))
	if err != nil {
		return mapServiceError(err)
	}
	mostLiked, err := h.directory.MostLiked(ctx)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"recent":     dto.NewUserList(page.Users),
			"most_liked": dto.NewUserList(mostLiked),
		},
		"page": pageResponse(page),
	})
}

// Search handles GET /users/search?q=&skill=&page=.
func (h *DirectoryHandler) Search(c *fiber.Ctx) error {
	result, err := h.directory.Search(c.UserContext(), c.Query("q"), c.Query("skill"))
	if err != nil {
		return mapServiceError(err)
	}
	page := service.Paginate(result.Users, c.QueryInt("page", 1), h.directory.PageSize())

	return c.JSON(fiber.Map{
		"data":    dto.NewUserList(page.Users),
		"term":    result.Term,
		"message": result.Message,
		"page":    pageResponse(page),
	})
}

// Profile handles GET /users/:id.
func (h *DirectoryHandler) Profile(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.directory.Profile(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

func pageResponse(p *service.Page) dto.PageResponse {
	return dto.PageResponse{
		Number:   p.Number,
		Size:     p.Size,
		Total:    p.Total,
		NumPages: p.NumPages,
		HasNext:  p.HasNext,
		HasPrev:  p.HasPrev,
	}
}
