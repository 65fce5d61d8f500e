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

// ProjectStore handles owner-scoped project CRUD
type ProjectStore struct {
	collection *mongo.Collection
	taskStore  *TaskStore
	activity   *ActivityService
}

// NewProjectStore creates a new project store
func NewProjectStore(mongodb *database.MongoDB, taskStore *TaskStore, activity *ActivityService) *ProjectStore {
	return &ProjectStore{
		collection: mongodb.Collection(database.CollectionProjects),
		taskStore:  taskStore,
		activity:   activity,
	}
}

// Create inserts a new project and logs a CREATED event
func (s *ProjectStore) Create(ctx context.Context, userID string, req *models.ProjectRequest) (*models.Project, error) {
	color := req.Color
	if color == "" {
		color = models.DefaultProjectColor
	}

	project := &models.Project{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.activity.Log(ctx, userID, models.ActivityCreated, "Project", project.Name,
		fmt.Sprintf("Project created: %s", project.Name)); err != nil {
		return nil, err
	}
	return project, nil
}

// GetByID retrieves a project by ID, scoped to the owner
func (s *ProjectStore) GetByID(ctx context.Context, userID string, projectID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.collection.FindOne(ctx, bson.M{
		"_id":    projectID,
		"userId": userID,
	}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project %s: %w", projectID.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// List returns the owner's projects, newest first
func (s *ProjectStore) List(ctx context.Context, userID string) ([]models.Project, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// Update applies field changes to a project
func (s *ProjectStore) Update(ctx context.Context, userID string, projectID primitive.ObjectID, req *models.ProjectRequest) (*models.Project, error) {
	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.Color != "" {
		set["color"] = req.Color
	}

	if len(set) > 0 {
		result, err := s.collection.UpdateOne(ctx,
			bson.M{"_id": projectID, "userId": userID},
			bson.M{"$set": set})
		if err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, fmt.Errorf("project %s: %w", projectID.Hex(), ErrNotFound)
		}
	}

	return s.GetByID(ctx, userID, projectID)
}

// Delete removes a project. Its tasks are kept and their project reference
// cleared, never cascade-deleted.
func (s *ProjectStore) Delete(ctx context.Context, userID string, projectID primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": projectID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", projectID.Hex(), ErrNotFound)
	}

	return s.taskStore.UnsetProjectForAll(ctx, userID, projectID)
}

// NamesByID returns a projectID→name map for the statistics projects chart
func (s *ProjectStore) NamesByID(ctx context.Context, userID string) (map[primitive.ObjectID]string, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1, "name": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to load project names: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode project names: %w", err)
	}

	names := make(map[primitive.ObjectID]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// PurgeOwner removes all of the owner's projects. Account deletion only.
func (s *ProjectStore) PurgeOwner(ctx context.Context, userID string) error {
	if _, err := s.collection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to purge projects: %w", err)
	}
	return nil
}
