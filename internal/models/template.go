package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateItem is one checklist line of a template. Completed is the default
// state the expanded subtask starts in when the template is used.
type TemplateItem struct {
	Content   string `bson:"content" json:"content" yaml:"content"`
	Completed bool   `bson:"completed" json:"completed" yaml:"completed"`
}

// Template is a reusable task blueprint. Items are stored embedded and
// replaced wholesale on every update, never diffed.
type Template struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Priority    TaskPriority       `bson:"priority" json:"priority"`
	Items       []TemplateItem     `bson:"items" json:"items"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// TemplateRequest is the request body for creating or updating a template
type TemplateRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Priority    TaskPriority   `json:"priority"`
	Items       []TemplateItem `json:"items"`
}

// UseTemplateResponse returns the id of the task materialized from a template
type UseTemplateResponse struct {
	TaskID string `json:"task_id"`
}
