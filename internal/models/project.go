package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultProjectColor is applied when a project is created without one
const DefaultProjectColor = "#667eea"

// Project groups tasks. Deleting a project never deletes its tasks; their
// project reference is cleared and they become "No Project" tasks.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Color       string             `bson:"color" json:"color"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}

// ProjectRequest is the request body for creating or updating a project
type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}
