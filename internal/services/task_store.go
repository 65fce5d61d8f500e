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

// TaskStore owns the task lifecycle: create, update, soft delete, restore
// and hard delete, plus the trash listings and bulk trash operations. Every
// state transition that the audit trail cares about goes through here, so
// the activity rows are appended at explicit call sites instead of hidden
// behind save hooks.
type TaskStore struct {
	tasks    *mongo.Collection
	subtasks *mongo.Collection
	comments *mongo.Collection
	activity *ActivityService
	metrics  *Metrics
}

// NewTaskStore creates a new task store
func NewTaskStore(mongodb *database.MongoDB, activity *ActivityService, metrics *Metrics) *TaskStore {
	return &TaskStore{
		tasks:    mongodb.Collection(database.CollectionTasks),
		subtasks: mongodb.Collection(database.CollectionSubtasks),
		comments: mongodb.Collection(database.CollectionComments),
		activity: activity,
		metrics:  metrics,
	}
}

// resolveUpdateAction decides which audit action a successful task save
// emits. A false→true completion emits COMPLETED and suppresses the generic
// UPDATED row for that same write; every other save emits UPDATED, even
// when nothing actually changed.
func resolveUpdateAction(wasCompleted, nowCompleted bool) models.ActivityAction {
	if nowCompleted && !wasCompleted {
		return models.ActivityCompleted
	}
	return models.ActivityUpdated
}

// Create inserts a new task for the owner and logs a CREATED event
func (s *TaskStore) Create(ctx context.Context, userID string, req *models.CreateTaskRequest) (*models.Task, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalid, priority)
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Completed:   false,
		IsImportant: req.IsImportant,
		IsDeleted:   false,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		oid, err := primitive.ObjectIDFromHex(*req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad project id: %v", ErrInvalid, err)
		}
		task.ProjectID = &oid
	}
	if len(req.TagIDs) > 0 {
		tagIDs, err := parseObjectIDs(req.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: bad tag id: %v", ErrInvalid, err)
		}
		task.TagIDs = tagIDs
	}

	if _, err := s.tasks.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.TaskCreated()

	if err := s.activity.Log(ctx, userID, models.ActivityCreated, "Task", task.Title,
		fmt.Sprintf("Task created: %s", task.Title)); err != nil {
		return nil, err
	}
	return task, nil
}

// GetByID retrieves a task by ID, scoped to the owner
func (s *TaskStore) GetByID(ctx context.Context, userID string, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.tasks.FindOne(ctx, bson.M{
		"_id":    taskID,
		"userId": userID,
	}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("task %s: %w", taskID.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// Update applies a partial update and logs COMPLETED or UPDATED.
// The prior document is loaded first so the completion transition can be
// detected as an explicit before/after pair.
func (s *TaskStore) Update(ctx context.Context, userID string, taskID primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error) {
	prior, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	unset := bson.M{}

	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalid, *req.Priority)
		}
		set["priority"] = *req.Priority
	}
	if req.Completed != nil {
		set["completed"] = *req.Completed
	}
	if req.IsImportant != nil {
		set["isImportant"] = *req.IsImportant
	}
	if req.DueDate != nil {
		set["dueDate"] = *req.DueDate
	} else if req.ClearDue {
		unset["dueDate"] = ""
	}
	if req.ProjectID != nil {
		if *req.ProjectID == "" {
			unset["projectId"] = ""
		} else {
			oid, err := primitive.ObjectIDFromHex(*req.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("%w: bad project id: %v", ErrInvalid, err)
			}
			set["projectId"] = oid
		}
	}
	if req.TagIDs != nil {
		tagIDs, err := parseObjectIDs(*req.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: bad tag id: %v", ErrInvalid, err)
		}
		set["tagIds"] = tagIDs
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := s.tasks.UpdateOne(ctx, bson.M{"_id": taskID, "userId": userID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("task %s: %w", taskID.Hex(), ErrNotFound)
	}

	updated, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	action := resolveUpdateAction(prior.Completed, updated.Completed)
	var details string
	if action == models.ActivityCompleted {
		s.metrics.TaskCompleted()
		details = fmt.Sprintf("Task completed: %s", updated.Title)
	} else {
		details = fmt.Sprintf("Task updated: %s", updated.Title)
	}

	if err := s.activity.Log(ctx, userID, action, "Task", updated.Title, details); err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDelete moves a task to the trash and logs a DELETED event.
// The document is retained; only the trash listing surfaces it afterwards.
func (s *TaskStore) SoftDelete(ctx context.Context, userID string, taskID primitive.ObjectID) error {
	task, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if task.IsDeleted {
		return fmt.Errorf("task %s: %w", taskID.Hex(), ErrNotFound)
	}

	now := time.Now().UTC()
	_, err = s.tasks.UpdateOne(ctx, bson.M{"_id": taskID, "userId": userID}, bson.M{
		"$set": bson.M{
			"isDeleted": true,
			"deletedAt": now,
			"updatedAt": now,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to soft-delete task: %w", err)
	}

	s.metrics.TaskTrashed()

	return s.activity.Log(ctx, userID, models.ActivityDeleted, "Task", task.Title,
		fmt.Sprintf("Task deleted: %s", task.Title))
}

// Restore pulls a task out of the trash. The original CREATED event is not
// re-emitted. Returns ErrNotFound when the id is not the caller's or the
// task is not currently trashed.
func (s *TaskStore) Restore(ctx context.Context, userID string, taskID primitive.ObjectID) error {
	now := time.Now().UTC()
	result, err := s.tasks.UpdateOne(ctx, bson.M{
		"_id":       taskID,
		"userId":    userID,
		"isDeleted": true,
	}, bson.M{
		"$set":   bson.M{"isDeleted": false, "updatedAt": now},
		"$unset": bson.M{"deletedAt": ""},
	})
	if err != nil {
		return fmt.Errorf("failed to restore task: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task %s: %w", taskID.Hex(), ErrNotFound)
	}
	return nil
}

// HardDelete permanently removes a trashed task with its subtasks and
// comments. Irreversible, and deliberately silent in the audit trail: the
// DELETED row was already written when the task entered the trash.
func (s *TaskStore) HardDelete(ctx context.Context, userID string, taskID primitive.ObjectID) error {
	result, err := s.tasks.DeleteOne(ctx, bson.M{
		"_id":       taskID,
		"userId":    userID,
		"isDeleted": true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("task %s: %w", taskID.Hex(), ErrNotFound)
	}

	s.metrics.TaskPurged()

	return s.cascadeDelete(ctx, taskID)
}

// cascadeDelete removes the dependents of a hard-deleted task
func (s *TaskStore) cascadeDelete(ctx context.Context, taskID primitive.ObjectID) error {
	if _, err := s.subtasks.DeleteMany(ctx, bson.M{"taskId": taskID}); err != nil {
		return fmt.Errorf("failed to delete subtasks: %w", err)
	}
	if _, err := s.comments.DeleteMany(ctx, bson.M{"taskId": taskID}); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

// TaskFilters narrows the active listing
type TaskFilters struct {
	Completed *bool
	Important bool
	DueToday  bool
	ProjectID string // hex id, or "none" for unassigned tasks
	TagID     string
}

// ListActive returns the owner's non-deleted tasks, newest first
func (s *TaskStore) ListActive(ctx context.Context, userID string, filters TaskFilters) ([]models.Task, error) {
	filter := bson.M{"userId": userID, "isDeleted": false}

	if filters.Completed != nil {
		filter["completed"] = *filters.Completed
	}
	if filters.Important {
		filter["isImportant"] = true
	}
	if filters.DueToday {
		now := time.Now().UTC()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		filter["dueDate"] = bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)}
	}
	if filters.ProjectID != "" {
		if filters.ProjectID == "none" {
			filter["projectId"] = bson.M{"$exists": false}
		} else if oid, err := primitive.ObjectIDFromHex(filters.ProjectID); err == nil {
			filter["projectId"] = oid
		}
	}
	if filters.TagID != "" {
		if oid, err := primitive.ObjectIDFromHex(filters.TagID); err == nil {
			filter["tagIds"] = oid
		}
	}

	cursor, err := s.tasks.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// ListTrash returns the owner's soft-deleted tasks, most recently trashed first
func (s *TaskStore) ListTrash(ctx context.Context, userID string) ([]models.Task, error) {
	cursor, err := s.tasks.Find(ctx, bson.M{"userId": userID, "isDeleted": true},
		options.Find().SetSort(bson.D{{Key: "deletedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list trash: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode trash: %w", err)
	}
	return tasks, nil
}

// EmptyTrash hard-deletes every trashed task for the owner and returns the
// number of tasks removed
func (s *TaskStore) EmptyTrash(ctx context.Context, userID string) (int, error) {
	trashed, err := s.ListTrash(ctx, userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, task := range trashed {
		if err := s.HardDelete(ctx, userID, task.ID); err != nil {
			continue
		}
		deleted++
	}
	return deleted, nil
}

// BulkRestore restores each id independently. Ids that are not the owner's
// or not trashed are skipped; the returned count covers actual restores.
func (s *TaskStore) BulkRestore(ctx context.Context, userID string, ids []string) int {
	restored := 0
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if err := s.Restore(ctx, userID, oid); err != nil {
			continue
		}
		restored++
	}
	return restored
}

// BulkHardDelete permanently deletes each id independently with the same
// lenient semantics as BulkRestore
func (s *TaskStore) BulkHardDelete(ctx context.Context, userID string, ids []string) int {
	deleted := 0
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if err := s.HardDelete(ctx, userID, oid); err != nil {
			continue
		}
		deleted++
	}
	return deleted
}

// UnsetProjectForAll clears the project reference from all of the owner's
// tasks in a project. Called when the project is deleted so its tasks
// survive as "No Project" tasks.
func (s *TaskStore) UnsetProjectForAll(ctx context.Context, userID string, projectID primitive.ObjectID) error {
	_, err := s.tasks.UpdateMany(ctx, bson.M{
		"userId":    userID,
		"projectId": projectID,
	}, bson.M{
		"$unset": bson.M{"projectId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to unset project for tasks: %w", err)
	}
	return nil
}

// PurgeOwner removes all of the owner's tasks with their dependents.
// Account deletion only.
func (s *TaskStore) PurgeOwner(ctx context.Context, userID string) error {
	cursor, err := s.tasks.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return fmt.Errorf("failed to load tasks for purge: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return fmt.Errorf("failed to decode tasks for purge: %w", err)
	}

	for _, row := range rows {
		if err := s.cascadeDelete(ctx, row.ID); err != nil {
			return err
		}
	}

	if _, err := s.tasks.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to purge tasks: %w", err)
	}
	return nil
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hexID := range hexIDs {
		oid, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, oid)
	}
	return ids, nil
}
