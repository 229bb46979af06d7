package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openclass/classroom/internal/domain"
	"github.com/openclass/classroom/internal/store"
)

type CourseHandler struct {
	Courses   *store.CourseStore
	UploadDir string
}

func (h *CourseHandler) Create(c *gin.Context) {
	uid, _ := currentUser(c)
	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and description are required"})
		return
	}

	course := &domain.Course{
		Name:        body.Name,
		Description: body.Description,
		Creator:     uid,
	}
	if err := h.Courses.Create(c.Request.Context(), course); err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.Courses.List(c.Request.Context())
	if err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) ListMine(c *gin.Context) {
	uid, _ := currentUser(c)
	courses, err := h.Courses.ListMine(c.Request.Context(), uid)
	if err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	course, err := h.Courses.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err, "Course not found")
		return
	}
	if !course.IsCreator(uid) && !course.HasStudent(uid) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You don't have access to this course"})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Content     string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid course data"})
		return
	}

	course, err := h.Courses.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err, "Course not found")
		return
	}
	if !course.IsCreator(uid) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only the course creator can update it"})
		return
	}

	if body.Name != "" {
		course.Name = body.Name
	}
	if body.Description != "" {
		course.Description = body.Description
	}
	if body.Content != "" {
		course.Content = body.Content
	}
	if err := h.Courses.Update(c.Request.Context(), course); err != nil {
		writeErr(c, err, "Course not found")
		return
	}
	c.JSON(http.StatusOK, course)
}

// Upload stores a material file under a timestamped name and records it
// on the course.
func (h *CourseHandler) Upload(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File is required"})
		return
	}

	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, stored)); err != nil {
		writeErr(c, err, "")
		return
	}

	material := domain.Material{
		Filename: file.Filename,
		FileURL:  "/upload/" + stored,
	}
	if err := h.Courses.AddMaterial(c.Request.Context(), id, material); err != nil {
		writeErr(c, err, "Course not found")
		return
	}

	course, err := h.Courses.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err, "Course not found")
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Courses.Enroll(c.Request.Context(), id, uid); err != nil {
		writeErr(c, err, "Course not found")
		return
	}
	course, err := h.Courses.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err, "Course not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully enrolled in the course", "course": course})
}

func (h *CourseHandler) Delete(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Courses.Delete(c.Request.Context(), id, uid); err != nil {
		writeErr(c, err, "Course not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}
