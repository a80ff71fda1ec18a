package http

import (
	"net/http"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *usecase.Categories
}

func NewCategoryHandler(categories *usecase.Categories) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.categories.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in usecase.CategoryInput
	if !bindJSON(c, &in, "Invalid Params") {
		return
	}
	cat, err := h.categories.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"_id": cat.ID, "name": cat.Name, "order": cat.Order})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var in usecase.CategoryInput
	if !bindJSON(c, &in, "Invalid params") {
		return
	}
	if err := h.categories.Update(c.Request.Context(), actor(c), c.Param("id"), in); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Category updated")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Category deleted")
}

func (h *CategoryHandler) Reorder(c *gin.Context) {
	var positions []usecase.CategoryPosition
	if !bindJSON(c, &positions, "Invalid params") {
		return
	}
	if err := h.categories.Reorder(c.Request.Context(), actor(c), positions); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Order updated")
}

type ProductHandler struct {
	products *usecase.Products
}

func NewProductHandler(products *usecase.Products) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c *gin.Context) {
	groups, err := h.products.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, groups)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in usecase.CreateProductInput
	if !bindJSON(c, &in, "Invalid Params") {
		return
	}
	p, err := h.products.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in usecase.UpdateProductInput
	if !bindJSON(c, &in, "Invalid params") {
		return
	}
	if err := h.products.Update(c.Request.Context(), actor(c), c.Param("id"), in); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Product updated")
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Product deleted")
}
