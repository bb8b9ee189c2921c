package models

import (
	"regexp"
	"time"
)

// slugPattern is the documented slug charset: lowercase letters, digits and
// single hyphens, no leading or trailing hyphen
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// MaxSlugLength is the maximum accepted slug length
const MaxSlugLength = 100

// ValidSlug reports whether s is a non-empty URL-safe slug
func ValidSlug(s string) bool {
	if s == "" || len(s) > MaxSlugLength {
		return false
	}
	return slugPattern.MatchString(s)
}

// Lesson represents a single unit of learning content, positioned within a
// level by an explicit order and shaped by its template
type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Level       Level     `json:"level"`
	Order       int       `json:"order"`
	Content     JSONMap   `json:"content"`
	IsPublished bool      `json:"isPublished"`
	TemplateID  string    `json:"templateId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	Level       Level   `json:"level"`
	Order       int     `json:"order"`
	Content     JSONMap `json:"content"`
	IsPublished *bool   `json:"isPublished,omitempty"`
	TemplateID  string  `json:"templateId"`
}

// UpdateLessonRequest represents a request to update a lesson (partial update)
type UpdateLessonRequest struct {
	Title       string  `json:"title,omitempty"`
	Slug        string  `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Level       Level   `json:"level,omitempty"`
	Order       *int    `json:"order,omitempty"`
	Content     JSONMap `json:"content,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
	TemplateID  string  `json:"templateId,omitempty"`
}

// LessonFilter holds optional filters for listing lessons
type LessonFilter struct {
	Level       *Level
	TemplateID  *string
	IsPublished *bool
}
