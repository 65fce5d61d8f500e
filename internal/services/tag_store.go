package services

import (
	"context"
	"fmt"

	"taskora/internal/database"
	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TagStore handles owner-scoped tag CRUD
type TagStore struct {
	collection *mongo.Collection
	tasks      *mongo.Collection
}

// NewTagStore creates a new tag store
func NewTagStore(mongodb *database.MongoDB) *TagStore {
	return &TagStore{
		collection: mongodb.Collection(database.CollectionTags),
		tasks:      mongodb.Collection(database.CollectionTasks),
	}
}

// Create inserts a new tag
func (s *TagStore) Create(ctx context.Context, userID string, req *models.TagRequest) (*models.Tag, error) {
	tag := &models.Tag{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
		Icon:   req.Icon,
	}

	if _, err := s.collection.InsertOne(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// GetByID retrieves a tag by ID, scoped to the owner
func (s *TagStore) GetByID(ctx context.Context, userID string, tagID primitive.ObjectID) (*models.Tag, error) {
	var tag models.Tag
	err := s.collection.FindOne(ctx, bson.M{"_id": tagID, "userId": userID}).Decode(&tag)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("tag %s: %w", tagID.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// GetByIDs retrieves multiple tags by id, scoped to the owner
func (s *TagStore) GetByIDs(ctx context.Context, userID string, tagIDs []primitive.ObjectID) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return []models.Tag{}, nil
	}

	cursor, err := s.collection.Find(ctx, bson.M{
		"_id":    bson.M{"$in": tagIDs},
		"userId": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

// List returns the owner's tags sorted by name
func (s *TagStore) List(ctx context.Context, userID string) ([]models.Tag, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

// Update applies field changes to a tag
func (s *TagStore) Update(ctx context.Context, userID string, tagID primitive.ObjectID, req *models.TagRequest) (*models.Tag, error) {
	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Color != "" {
		set["color"] = req.Color
	}
	if req.Icon != "" {
		set["icon"] = req.Icon
	}

	if len(set) > 0 {
		result, err := s.collection.UpdateOne(ctx,
			bson.M{"_id": tagID, "userId": userID},
			bson.M{"$set": set})
		if err != nil {
			return nil, fmt.Errorf("failed to update tag: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, fmt.Errorf("tag %s: %w", tagID.Hex(), ErrNotFound)
		}
	}

	return s.GetByID(ctx, userID, tagID)
}

// Delete removes a tag and pulls its reference from the owner's tasks
func (s *TagStore) Delete(ctx context.Context, userID string, tagID primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": tagID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("tag %s: %w", tagID.Hex(), ErrNotFound)
	}

	if _, err := s.tasks.UpdateMany(ctx,
		bson.M{"userId": userID, "tagIds": tagID},
		bson.M{"$pull": bson.M{"tagIds": tagID}}); err != nil {
		return fmt.Errorf("failed to detach tag from tasks: %w", err)
	}
	return nil
}

// PurgeOwner removes all of the owner's tags. Account deletion only.
func (s *TagStore) PurgeOwner(ctx context.Context, userID string) error {
	if _, err := s.collection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to purge tags: %w", err)
	}
	return nil
}
