package models

import "time"

// UserProgress represents a completion record joining a user to a lesson.
// At most one record exists per (user, lesson) pair; CompletedAt is set
// exactly when Completed is true.
type UserProgress struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	LessonID    string     `json:"lessonId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateUserProgressRequest represents a request to create a progress record
type CreateUserProgressRequest struct {
	LessonID  string `json:"lessonId"`
	Completed bool   `json:"completed"`
}

// UpdateUserProgressRequest represents a request to update a progress record
// (partial update)
type UpdateUserProgressRequest struct {
	Completed   *bool      `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// UserProgressFilter holds optional filters for listing progress records
type UserProgressFilter struct {
	UserID    *string
	LessonID  *string
	Completed *bool
}
