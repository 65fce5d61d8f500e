package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tag is a user-defined label, many-to-many with tasks
type Tag struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"userId" json:"user_id"`
	Name   string             `bson:"name" json:"name"`
	Color  string             `bson:"color" json:"color"`
	Icon   string             `bson:"icon" json:"icon"`
}

// TagRequest is the request body for creating or updating a tag
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
