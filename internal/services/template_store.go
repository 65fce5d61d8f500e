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

// TemplateStore handles task templates and their expansion into tasks
type TemplateStore struct {
	collection *mongo.Collection
	subtasks   *mongo.Collection
	taskStore  *TaskStore
}

// NewTemplateStore creates a new template store
func NewTemplateStore(mongodb *database.MongoDB, taskStore *TaskStore) *TemplateStore {
	return &TemplateStore{
		collection: mongodb.Collection(database.CollectionTemplates),
		subtasks:   mongodb.Collection(database.CollectionSubtasks),
		taskStore:  taskStore,
	}
}

// Create inserts a new template
func (s *TemplateStore) Create(ctx context.Context, userID string, req *models.TemplateRequest) (*models.Template, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalid, priority)
	}

	now := time.Now().UTC()
	template := &models.Template{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Items:       req.Items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if template.Items == nil {
		template.Items = []models.TemplateItem{}
	}

	if _, err := s.collection.InsertOne(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// GetByID retrieves a template by ID, scoped to the owner
func (s *TemplateStore) GetByID(ctx context.Context, userID string, templateID primitive.ObjectID) (*models.Template, error) {
	var template models.Template
	err := s.collection.FindOne(ctx, bson.M{
		"_id":    templateID,
		"userId": userID,
	}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("template %s: %w", templateID.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

// List returns the owner's templates, newest first
func (s *TemplateStore) List(ctx context.Context, userID string) ([]models.Template, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer cursor.Close(ctx)

	templates := []models.Template{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	return templates, nil
}

// Update replaces the template's fields. Items are replaced wholesale on
// every update, never diffed against the stored list.
func (s *TemplateStore) Update(ctx context.Context, userID string, templateID primitive.ObjectID, req *models.TemplateRequest) (*models.Template, error) {
	if req.Priority != "" && !models.ValidPriority(req.Priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalid, req.Priority)
	}

	items := req.Items
	if items == nil {
		items = []models.TemplateItem{}
	}

	set := bson.M{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"items":       items,
		"updatedAt":   time.Now().UTC(),
	}
	if req.Priority != "" {
		set["priority"] = req.Priority
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": templateID, "userId": userID},
		bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("template %s: %w", templateID.Hex(), ErrNotFound)
	}

	return s.GetByID(ctx, userID, templateID)
}

// Delete removes a template
func (s *TemplateStore) Delete(ctx context.Context, userID string, templateID primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": templateID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("template %s: %w", templateID.Hex(), ErrNotFound)
	}
	return nil
}

// Use materializes a template into a new task plus one incomplete subtask
// per item and returns the new task's id. Project and tags are not copied
// and the template itself is left untouched. The task creation logs the
// usual CREATED event.
func (s *TemplateStore) Use(ctx context.Context, userID string, templateID primitive.ObjectID) (primitive.ObjectID, error) {
	template, err := s.GetByID(ctx, userID, templateID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	task, err := s.taskStore.Create(ctx, userID, &models.CreateTaskRequest{
		Title:       template.Title,
		Description: template.Description,
		Priority:    template.Priority,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	subtasks := expandTemplateItems(task.ID, template.Items)
	if len(subtasks) > 0 {
		docs := make([]interface{}, len(subtasks))
		for i := range subtasks {
			docs[i] = subtasks[i]
		}
		if _, err := s.subtasks.InsertMany(ctx, docs); err != nil {
			return primitive.NilObjectID, fmt.Errorf("failed to create subtasks from template: %w", err)
		}
	}

	return task.ID, nil
}

// expandTemplateItems shapes template items into subtasks for a new task.
// Expanded subtasks always start incomplete regardless of the item default.
func expandTemplateItems(taskID primitive.ObjectID, items []models.TemplateItem) []models.Subtask {
	subtasks := make([]models.Subtask, 0, len(items))
	for _, item := range items {
		subtasks = append(subtasks, models.Subtask{
			ID:        primitive.NewObjectID(),
			TaskID:    taskID,
			Title:     item.Content,
			Completed: false,
		})
	}
	return subtasks
}

// PurgeOwner removes all of the owner's templates. Account deletion only.
func (s *TemplateStore) PurgeOwner(ctx context.Context, userID string) error {
	if _, err := s.collection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to purge templates: %w", err)
	}
	return nil
}
