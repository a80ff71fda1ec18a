package http

import (
	"net/http"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addresses *usecase.Addresses
}

func NewAddressHandler(addresses *usecase.Addresses) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func (h *AddressHandler) List(c *gin.Context) {
	list, err := h.addresses.List(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *AddressHandler) Create(c *gin.Context) {
	var in usecase.AddressInput
	if !bindJSON(c, &in, "Invalid Params") {
		return
	}
	a, err := h.addresses.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AddressHandler) Update(c *gin.Context) {
	var in usecase.UpdateAddressInput
	if !bindJSON(c, &in, "Invalid params") {
		return
	}
	if err := h.addresses.Update(c.Request.Context(), actor(c), c.Param("id"), in); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Address updated")
}

func (h *AddressHandler) Delete(c *gin.Context) {
	if err := h.addresses.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Address deleted")
}
