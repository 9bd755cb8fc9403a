package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taskguard/internal/auth"
	"taskguard/internal/models"
)

// Length bounds count characters, not bytes, so multibyte titles get
// the full budget.
func validTitle(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= 200
}

func validDescription(s string) bool {
	return utf8.RuneCountInString(s) <= 1000
}

// ListTasks returns the caller's tasks, newest first.
func ListTasks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		query := db.Where("owner_id = ?", p.ID).Order("id DESC")
		if status := c.Query("status"); status != "" {
			if !models.TaskStatus(status).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
				return
			}
			query = query.Where("status = ?", status)
		}

		var tasks []models.Task
		if err := query.Find(&tasks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": tasks})
	}
}

// CreateTask inserts a new task owned by the caller.
func CreateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var in struct {
			Title       string `json:"title" binding:"required"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in.Title = strings.TrimSpace(in.Title)
		if !validTitle(in.Title) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must be 1-200 characters"})
			return
		}
		if !validDescription(in.Description) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description must be at most 1000 characters"})
			return
		}

		// Unique title per owner (also enforced by the composite index)
		var existing int64
		if err := db.Model(&models.Task{}).
			Where("owner_id = ? AND title = ?", p.ID, in.Title).
			Count(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "a task with this title already exists"})
			return
		}

		task := models.Task{
			OwnerID:     p.ID,
			Title:       in.Title,
			Description: in.Description,
			Status:      models.TaskPending,
		}
		if err := db.Create(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"task": task})
	}
}

// GetTask fetches one of the caller's tasks by id.
func GetTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var task models.Task
		if err := db.Where("owner_id = ?", p.ID).First(&task, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

// UpdateTask edits title/description and walks the status transition
// table. pending -> in_progress|cancelled, in_progress -> completed|
// cancelled; completed and cancelled are terminal.
func UpdateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var in struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Status      *string `json:"status"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var task models.Task
		if err := db.Where("owner_id = ?", p.ID).First(&task, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if !validTitle(title) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title must be 1-200 characters"})
				return
			}
			task.Title = title
		}
		if in.Description != nil {
			if !validDescription(*in.Description) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "description must be at most 1000 characters"})
				return
			}
			task.Description = *in.Description
		}
		if in.Status != nil {
			next := models.TaskStatus(*in.Status)
			if !next.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			if next != task.Status && !models.CanTransition(task.Status, next) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "invalid status transition",
					"from":  task.Status,
					"to":    next,
				})
				return
			}
			task.Status = next
		}

		if err := db.Save(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

// DeleteTask removes one of the caller's tasks. Completed tasks are
// kept for the record and cannot be deleted.
func DeleteTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var task models.Task
		if err := db.Where("owner_id = ?", p.ID).First(&task, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !task.Deletable() {
			c.JSON(http.StatusConflict, gin.H{"error": "completed tasks cannot be deleted"})
			return
		}

		if err := db.Delete(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
