package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclass/classroom/internal/domain"
	"github.com/openclass/classroom/internal/store"
)

type LiveClassHandler struct {
	Classes *store.LiveClassStore
	Users   *store.UserStore
}

func (h *LiveClassHandler) Create(c *gin.Context) {
	uid, _ := currentUser(c)
	var body struct {
		Name          string   `json:"name" binding:"required"`
		Time          string   `json:"time" binding:"required"`
		AllowedEmails []string `json:"allowedEmails"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and time are required"})
		return
	}

	lc := &domain.LiveClass{
		Name:          body.Name,
		Time:          body.Time,
		Creator:       uid,
		AllowedEmails: body.AllowedEmails,
	}
	if err := h.Classes.Create(c.Request.Context(), lc); err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, lc)
}

func (h *LiveClassHandler) List(c *gin.Context) {
	uid, _ := currentUser(c)
	classes, err := h.Classes.ListByCreator(c.Request.Context(), uid)
	if err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, classes)
}

// ListMine returns classes the caller created or is invited to.
func (h *LiveClassHandler) ListMine(c *gin.Context) {
	uid, email := currentUser(c)
	classes, err := h.Classes.ListMine(c.Request.Context(), uid, email)
	if err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *LiveClassHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lc, err := h.Classes.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err, "Live class not found")
		return
	}
	c.JSON(http.StatusOK, lc)
}

func (h *LiveClassHandler) Join(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.Users.FindByID(c.Request.Context(), uid)
	if err != nil {
		writeErr(c, err, "User not found")
		return
	}

	lc, err := h.Classes.Join(c.Request.Context(), id, user)
	if err != nil {
		writeErr(c, err, "Class not found")
		return
	}
	c.JSON(http.StatusOK, lc)
}

func (h *LiveClassHandler) Leave(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	lc, err := h.Classes.Leave(c.Request.Context(), id, uid)
	if err != nil {
		writeErr(c, err, "Class not found")
		return
	}
	c.JSON(http.StatusOK, lc)
}

func (h *LiveClassHandler) Delete(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Classes.Delete(c.Request.Context(), id, uid); err != nil {
		writeErr(c, err, "Live class not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Live class deleted successfully"})
}
