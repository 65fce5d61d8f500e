package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a note on a task, removed with the task on hard delete
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    primitive.ObjectID `bson:"taskId" json:"task_id"`
	UserID    string             `bson:"userId" json:"user_id"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// CreateCommentRequest is the request body for creating a comment
type CreateCommentRequest struct {
	TaskID  string `json:"task_id"`
	Content string `json:"content"`
}
