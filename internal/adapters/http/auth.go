package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/openclass/classroom/internal/auth"
	"github.com/openclass/classroom/internal/domain"
	"github.com/openclass/classroom/internal/store"
)

type AuthHandler struct {
	Users  *store.UserStore
	Secret string
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration data"})
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		writeErr(c, err, "")
		return
	}
	user, err := domain.NewUser(body.Name, body.Email, hash, body.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		writeErr(c, err, "")
		return
	}

	token, err := auth.IssueToken(h.Secret, user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		writeErr(c, err, "")
		return
	}

	log.Info().Str("module", "adapters.http").Str("email", user.Email).Msg("user registered")
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), body.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		writeErr(c, err, "")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := auth.IssueToken(h.Secret, user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
