package http

import (
	"errors"
	"net/http"

	"github.com/Eddi3MS/delivery-bd/internal/adapter/http/middleware"
	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/Eddi3MS/delivery-bd/internal/security"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users    *usecase.Users
	sessions *security.Sessions
	authn    *middleware.Authn
}

func NewUserHandler(users *usecase.Users, sessions *security.Sessions, authn *middleware.Authn) *UserHandler {
	return &UserHandler{users: users, sessions: sessions, authn: authn}
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var in usecase.SignUpInput
	if !bindJSON(c, &in, "Invalid params") {
		return
	}
	u, err := h.users.SignUp(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	h.startSession(c, http.StatusCreated, u)
}

func (h *UserHandler) SignIn(c *gin.Context) {
	var in usecase.SignInInput
	if !bindJSON(c, &in, "Invalid Params") {
		return
	}
	u, err := h.users.SignIn(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	h.startSession(c, http.StatusOK, u)
}

func (h *UserHandler) SignOut(c *gin.Context) {
	h.authn.ClearSession(c)
	confirm(c, http.StatusOK, "User logged out successfully")
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var in usecase.UpdateAccountInput
	if !bindJSON(c, &in, "Wrong data format") {
		return
	}
	u, err := h.users.UpdateAccount(c.Request.Context(), actor(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Profile())
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.users.Profile(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		// the one place a missing record is a 404
		if errors.Is(err, usecase.ErrNotFound) {
			writeErrorStatus(c, http.StatusNotFound, err)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Profile())
}

func (h *UserHandler) Me(c *gin.Context) {
	me := actor(c)
	u, err := h.users.Profile(c.Request.Context(), me, me.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Profile())
}

func (h *UserHandler) startSession(c *gin.Context, status int, u *domain.User) {
	token, err := h.sessions.Issue(u)
	if err != nil {
		writeError(c, err)
		return
	}
	h.authn.StartSession(c, token)
	c.JSON(status, u.Profile())
}
