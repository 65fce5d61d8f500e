package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskora/internal/database"
	"taskora/internal/models"

	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrEmailTaken is returned when registering with an email that already
// has an account
var ErrEmailTaken = errors.New("email already registered")

// UserService manages accounts. Lookups by id sit on the hot path of every
// authenticated request, so they go through a short-lived in-memory cache.
type UserService struct {
	collection *mongo.Collection
	cache      *cache.Cache

	tasks     *TaskStore
	projects  *ProjectStore
	tags      *TagStore
	templates *TemplateStore
	activity  *ActivityService
}

// NewUserService creates a new user service
func NewUserService(mongodb *database.MongoDB, tasks *TaskStore, projects *ProjectStore, tags *TagStore, templates *TemplateStore, activity *ActivityService) *UserService {
	return &UserService{
		collection: mongodb.Collection(database.CollectionUsers),
		cache:      cache.New(5*time.Minute, 10*time.Minute),
		tasks:      tasks,
		projects:   projects,
		tags:       tags,
		templates:  templates,
		activity:   activity,
	}
}

// Create registers a new account. The email must be unused; the unique
// index on the collection backstops concurrent registrations.
func (s *UserService) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Used during login only, so it
// always hits the database.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by id, served from cache when fresh
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if cached, found := s.cache.Get(userID); found {
		return cached.(*models.User), nil
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	s.cache.Set(userID, &user, cache.DefaultExpiration)
	return &user, nil
}

// Count returns the total number of accounts
func (s *UserService) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// DeleteAllData removes every document the user owns across all
// collections, then the account itself. Tasks cascade their subtasks and
// comments. There is no undo.
func (s *UserService) DeleteAllData(ctx context.Context, userID string) error {
	slog.Warn("Deleting all account data", "user_id", userID)

	if err := s.tasks.PurgeOwner(ctx, userID); err != nil {
		return err
	}
	if err := s.projects.PurgeOwner(ctx, userID); err != nil {
		return err
	}
	if err := s.tags.PurgeOwner(ctx, userID); err != nil {
		return err
	}
	if err := s.templates.PurgeOwner(ctx, userID); err != nil {
		return err
	}
	if _, err := s.activity.PurgeOwner(ctx, userID); err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.cache.Delete(userID)
	return nil
}
