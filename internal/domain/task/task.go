package task

import (
	"errors"
	"time"
)

type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

// Absent and not-owned look the same on purpose: the repo filters every
// mutation by both task id and user id, so a caller cannot probe for other
// users' task ids.
var ErrNotFound = errors.New("task not found")

type CreateTaskRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

// Done is a pointer so "missing" and "false" are distinguishable.
type UpdateTaskRequest struct {
	Done *bool `json:"done" binding:"required"`
}
