package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryForm represents the add-category form
type CategoryForm struct {
	Category string `form:"category" binding:"max=64"`
}

// ShowCategories renders the category management page
func (h *CategoryHandler) ShowCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		flashError(c, err, "/")
		return
	}

	render(c, http.StatusOK, "categories.html", gin.H{
		"Categories": categories,
	})
}

// CreateCategory adds a category for the user. An empty submission just
// redirects back; a (user, name) duplicate is rejected with a flash.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil || form.Category == "" {
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	if _, err := h.categoryService.CreateCategory(userID, form.Category); err != nil {
		flashError(c, err, "/categories")
		return
	}

	redirectWithFlash(c, "/categories", "success", "Category added successfully!")
}

// DeleteCategory removes an owned category. Transactions keep their
// free-text category label.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		notFound(c)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			notFound(c)
			return
		}
		flashError(c, err, "/categories")
		return
	}

	redirectWithFlash(c, "/categories", "success", "Category deleted successfully.")
}
