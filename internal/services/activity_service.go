package services

import (
	"context"
	"fmt"
	"time"

	"taskora/internal/database"
	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityService appends and reads the immutable per-owner audit trail.
// Rows are written synchronously after each task/project mutation; a failed
// append is surfaced to the caller of the mutation but the mutation itself
// is never rolled back or retried.
type ActivityService struct {
	collection *mongo.Collection
}

// NewActivityService creates a new activity service
func NewActivityService(mongodb *database.MongoDB) *ActivityService {
	return &ActivityService{
		collection: mongodb.Collection(database.CollectionActivityLog),
	}
}

// Log appends one audit row stamped with the current time
func (s *ActivityService) Log(ctx context.Context, userID string, action models.ActivityAction, targetType, targetName, details string) error {
	entry := models.ActivityLog{
		UserID:     userID,
		Action:     action,
		TargetType: targetType,
		TargetName: targetName,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// List returns the owner's audit rows, newest first
func (s *ActivityService) List(ctx context.Context, userID string, limit int64) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.ActivityLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode activity: %w", err)
	}
	return entries, nil
}

// CompletedTimestamps returns the timestamps of every COMPLETED event for
// the owner, used by the statistics engine.
func (s *ActivityService) CompletedTimestamps(ctx context.Context, userID string) ([]time.Time, error) {
	cursor, err := s.collection.Find(ctx, bson.M{
		"userId": userID,
		"action": models.ActivityCompleted,
	}, options.Find().SetProjection(bson.M{"timestamp": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to load completed events: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Timestamp time.Time `bson:"timestamp"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode completed events: %w", err)
	}

	timestamps := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		timestamps = append(timestamps, r.Timestamp)
	}
	return timestamps, nil
}

// PurgeOwner removes every audit row for the owner. Only the full account
// data purge calls this; nothing else deletes activity.
func (s *ActivityService) PurgeOwner(ctx context.Context, userID string) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to purge activity: %w", err)
	}
	return result.DeletedCount, nil
}
