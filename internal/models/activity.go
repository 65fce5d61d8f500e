package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityAction is the kind of lifecycle event recorded in the audit trail
type ActivityAction string

const (
	ActivityCreated   ActivityAction = "CREATED"
	ActivityCompleted ActivityAction = "COMPLETED"
	ActivityUpdated   ActivityAction = "UPDATED"
	ActivityDeleted   ActivityAction = "DELETED"
)

// ActivityLog is one immutable audit row. Rows are never updated or deleted
// individually; the only removal path is a full owner data purge.
type ActivityLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"user_id"`
	Action     ActivityAction     `bson:"action" json:"action"`
	TargetType string             `bson:"targetType" json:"target_type"`
	TargetName string             `bson:"targetName" json:"target_name"`
	Details    string             `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
