package services

import (
	"context"
	"fmt"

	"taskora/internal/database"
	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubtaskStore handles subtask CRUD. Subtasks have no owner field; every
// operation verifies the parent task belongs to the caller first.
type SubtaskStore struct {
	collection *mongo.Collection
	taskStore  *TaskStore
}

// NewSubtaskStore creates a new subtask store
func NewSubtaskStore(mongodb *database.MongoDB, taskStore *TaskStore) *SubtaskStore {
	return &SubtaskStore{
		collection: mongodb.Collection(database.CollectionSubtasks),
		taskStore:  taskStore,
	}
}

// Create inserts a subtask under one of the caller's tasks
func (s *SubtaskStore) Create(ctx context.Context, userID string, req *models.CreateSubtaskRequest) (*models.Subtask, error) {
	taskID, err := primitive.ObjectIDFromHex(req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad task id: %v", ErrInvalid, err)
	}
	if _, err := s.taskStore.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	subtask := &models.Subtask{
		ID:     primitive.NewObjectID(),
		TaskID: taskID,
		Title:  req.Title,
	}

	if _, err := s.collection.InsertOne(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}
	return subtask, nil
}

// ListByTask returns the subtasks of one of the caller's tasks
func (s *SubtaskStore) ListByTask(ctx context.Context, userID string, taskID primitive.ObjectID) ([]models.Subtask, error) {
	if _, err := s.taskStore.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.listByTask(ctx, taskID)
}

// listByTask skips the ownership check for callers that already hold the task
func (s *SubtaskStore) listByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Subtask, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"taskId": taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	defer cursor.Close(ctx)

	subtasks := []models.Subtask{}
	if err := cursor.All(ctx, &subtasks); err != nil {
		return nil, fmt.Errorf("failed to decode subtasks: %w", err)
	}
	return subtasks, nil
}

// Update applies a partial update after verifying ownership through the parent
func (s *SubtaskStore) Update(ctx context.Context, userID string, subtaskID primitive.ObjectID, req *models.UpdateSubtaskRequest) (*models.Subtask, error) {
	subtask, err := s.getOwned(ctx, userID, subtaskID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Completed != nil {
		set["completed"] = *req.Completed
	}

	if len(set) > 0 {
		if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": subtaskID}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("failed to update subtask: %w", err)
		}
	}

	if req.Title != nil {
		subtask.Title = *req.Title
	}
	if req.Completed != nil {
		subtask.Completed = *req.Completed
	}
	return subtask, nil
}

// Delete removes a subtask after verifying ownership through the parent
func (s *SubtaskStore) Delete(ctx context.Context, userID string, subtaskID primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, userID, subtaskID); err != nil {
		return err
	}

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": subtaskID}); err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}
	return nil
}

// getOwned loads a subtask and checks the parent task belongs to the caller
func (s *SubtaskStore) getOwned(ctx context.Context, userID string, subtaskID primitive.ObjectID) (*models.Subtask, error) {
	var subtask models.Subtask
	err := s.collection.FindOne(ctx, bson.M{"_id": subtaskID}).Decode(&subtask)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("subtask %s: %w", subtaskID.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subtask: %w", err)
	}

	if _, err := s.taskStore.GetByID(ctx, userID, subtask.TaskID); err != nil {
		return nil, fmt.Errorf("subtask %s: %w", subtaskID.Hex(), ErrNotFound)
	}
	return &subtask, nil
}
