package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davidkuria/resto-api/internal/application/service"
	"github.com/davidkuria/resto-api/internal/config"
	"github.com/davidkuria/resto-api/internal/presentation/http/dto/request"
	"github.com/davidkuria/resto-api/internal/presentation/http/dto/response"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

// MenuHandler handles menu catalog HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
	storage     *config.StorageConfig
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService, storage *config.StorageConfig) *MenuHandler {
	return &MenuHandler{menuService: menuService, storage: storage}
}

// Create handles menu item creation.
func (h *MenuHandler) Create(c *gin.Context) {
	var req request.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.Create(c.Request.Context(), &service.CreateMenuItemInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// Get handles menu item lookup by id.
func (h *MenuHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Menu item not found")
		return
	}

	item, err := h.menuService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", item)
}

// List handles paginated menu listing.
func (h *MenuHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.menuService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Menu retrieved successfully", result)
}

// Update handles menu item updates.
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Menu item not found")
		return
	}

	var req request.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.Update(c.Request.Context(), id, &service.UpdateMenuItemInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated successfully", item)
}

// Delete handles menu item deletion. Historical bills keep their name/price
// snapshots, so deleting a catalog entry never alters them.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Menu item not found")
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UploadImage stores an item image under the storage path and records its
// relative location on the menu item.
func (h *MenuHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Menu item not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file required")
		return
	}
	if file.Size > h.storage.UploadMaxSize {
		response.BadRequest(c, "Image exceeds maximum upload size")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.BadRequest(c, "Unsupported image type")
		return
	}

	name := fmt.Sprintf("%s%s", id, ext)
	dst := filepath.Join(h.storage.Path, "images", name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		response.InternalServerError(c, "Failed to store image")
		return
	}

	item, err := h.menuService.SetImage(c.Request.Context(), id, filepath.Join("images", name))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Image uploaded successfully", item)
}
