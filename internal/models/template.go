package models

import "time"

// LessonType represents the kind of lesson a template describes
type LessonType string

const (
	LessonTypeVocabulary LessonType = "vocabulary"
	LessonTypeGrammar    LessonType = "grammar"
	LessonTypeReading    LessonType = "reading"
	LessonTypeListening  LessonType = "listening"
)

// ValidLessonType reports whether t is a known lesson type
func ValidLessonType(t LessonType) bool {
	switch t {
	case LessonTypeVocabulary, LessonTypeGrammar, LessonTypeReading, LessonTypeListening:
		return true
	}
	return false
}

// Template represents a reusable structural definition for a class of lessons
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        LessonType `json:"type"`
	Schema      JSONMap    `json:"schema"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateTemplateRequest represents a request to create a template
type CreateTemplateRequest struct {
	Name        string     `json:"name"`
	Type        LessonType `json:"type"`
	Schema      JSONMap    `json:"schema"`
	Description string     `json:"description,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// UpdateTemplateRequest represents a request to update a template (partial update)
type UpdateTemplateRequest struct {
	Name        string     `json:"name,omitempty"`
	Type        LessonType `json:"type,omitempty"`
	Schema      JSONMap    `json:"schema,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// TemplateFilter holds optional filters for listing templates
type TemplateFilter struct {
	Type     *LessonType
	IsActive *bool
}
