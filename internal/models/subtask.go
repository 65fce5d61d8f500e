package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Subtask is a checklist item under a task. It has no owner field of its
// own; ownership flows through the parent task and it is removed whenever
// the parent is hard-deleted.
type Subtask struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    primitive.ObjectID `bson:"taskId" json:"task_id"`
	Title     string             `bson:"title" json:"title"`
	Completed bool               `bson:"completed" json:"completed"`
}

// CreateSubtaskRequest is the request body for creating a subtask
type CreateSubtaskRequest struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

// UpdateSubtaskRequest is the request body for partial subtask updates
type UpdateSubtaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}
