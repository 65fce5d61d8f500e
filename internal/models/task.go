package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskPriority is the urgency level of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ValidPriority reports whether p is one of the three known levels
func ValidPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task represents a user's task. Soft-deleted tasks keep their document with
// isDeleted set and deletedAt stamped; they only surface through trash queries.
type Task struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      string               `bson:"userId" json:"user_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Priority    TaskPriority         `bson:"priority" json:"priority"`
	Completed   bool                 `bson:"completed" json:"completed"`
	IsImportant bool                 `bson:"isImportant" json:"is_important"`
	IsDeleted   bool                 `bson:"isDeleted" json:"is_deleted"`
	DeletedAt   *time.Time           `bson:"deletedAt,omitempty" json:"deleted_at,omitempty"`
	DueDate     *time.Time           `bson:"dueDate,omitempty" json:"due_date,omitempty"`
	ProjectID   *primitive.ObjectID  `bson:"projectId,omitempty" json:"project_id,omitempty"`
	TagIDs      []primitive.ObjectID `bson:"tagIds,omitempty" json:"tag_ids,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updated_at"`
}

// MarkDeleted flips the task into the trash, stamping deletedAt.
func (t *Task) MarkDeleted(now time.Time) {
	t.IsDeleted = true
	t.DeletedAt = &now
	t.UpdatedAt = now
}

// MarkRestored pulls the task back out of the trash.
func (t *Task) MarkRestored(now time.Time) {
	t.IsDeleted = false
	t.DeletedAt = nil
	t.UpdatedAt = now
}

// TrashConsistent reports whether the soft-delete flag and timestamp agree:
// isDeleted=true requires deletedAt to be set, isDeleted=false requires nil.
func (t *Task) TrashConsistent() bool {
	if t.IsDeleted {
		return t.DeletedAt != nil
	}
	return t.DeletedAt == nil
}

// CreateTaskRequest is the request body for creating a task
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	IsImportant bool         `json:"is_important"`
	DueDate     *time.Time   `json:"due_date"`
	ProjectID   *string      `json:"project_id"`
	TagIDs      []string     `json:"tag_ids"`
}

// UpdateTaskRequest is the request body for partial task updates.
// Nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Priority    *TaskPriority `json:"priority"`
	Completed   *bool         `json:"completed"`
	IsImportant *bool         `json:"is_important"`
	DueDate     *time.Time    `json:"due_date"`
	ClearDue    bool          `json:"clear_due_date"`
	ProjectID   *string       `json:"project_id"`
	TagIDs      *[]string     `json:"tag_ids"`
}

// BulkTaskRequest carries the id list for bulk trash operations
type BulkTaskRequest struct {
	TaskIDs []string `json:"task_ids"`
}

// TaskResponse is a task expanded with its project, tags, subtasks and comments
type TaskResponse struct {
	Task
	Project  *Project  `json:"project,omitempty"`
	Tags     []Tag     `json:"tags"`
	Subtasks []Subtask `json:"subtasks"`
	Comments []Comment `json:"comments"`
}
