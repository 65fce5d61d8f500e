package services

import (
	"context"
	"fmt"
	"time"

	"taskora/internal/database"
	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentStore handles task comments. Ownership is checked through the
// parent task like subtasks.
type CommentStore struct {
	collection *mongo.Collection
	taskStore  *TaskStore
}

// NewCommentStore creates a new comment store
func NewCommentStore(mongodb *database.MongoDB, taskStore *TaskStore) *CommentStore {
	return &CommentStore{
		collection: mongodb.Collection(database.CollectionComments),
		taskStore:  taskStore,
	}
}

// Create inserts a comment on one of the caller's tasks
func (s *CommentStore) Create(ctx context.Context, userID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	taskID, err := primitive.ObjectIDFromHex(req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad task id: %v", ErrInvalid, err)
	}
	if _, err := s.taskStore.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        primitive.NewObjectID(),
		TaskID:    taskID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListByTask returns a task's comments oldest first
func (s *CommentStore) ListByTask(ctx context.Context, userID string, taskID primitive.ObjectID) ([]models.Comment, error) {
	if _, err := s.taskStore.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	cursor, err := s.collection.Find(ctx, bson.M{"taskId": taskID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// Delete removes one of the caller's comments
func (s *CommentStore) Delete(ctx context.Context, userID string, commentID primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": commentID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("comment %s: %w", commentID.Hex(), ErrNotFound)
	}
	return nil
}
