package jobs

import (
	"context"
	"log/slog"
	"time"

	"taskora/internal/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TrashCleanupJob hard-deletes tasks that have sat in the trash past the
// retention window, together with their subtasks and comments. It works
// directly on the collections; no activity rows are written because the
// DELETED row was already logged when each task was trashed.
type TrashCleanupJob struct {
	tasks         *mongo.Collection
	subtasks      *mongo.Collection
	comments      *mongo.Collection
	retentionDays int
}

// NewTrashCleanupJob creates a new trash cleanup job. A zero or negative
// retention disables the purge.
func NewTrashCleanupJob(mongodb *database.MongoDB, retentionDays int) *TrashCleanupJob {
	db := mongodb.Database()
	return &TrashCleanupJob{
		tasks:         db.Collection(database.CollectionTasks),
		subtasks:      db.Collection(database.CollectionSubtasks),
		comments:      db.Collection(database.CollectionComments),
		retentionDays: retentionDays,
	}
}

// Run purges all expired trash across all owners
func (j *TrashCleanupJob) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := slog.With("job", "trash_cleanup", "run_id", runID)

	if j.retentionDays <= 0 {
		logger.Info("Trash retention disabled, skipping")
		return nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)
	logger.Info("Purging expired trash", "cutoff", cutoff)
	start := time.Now()

	cursor, err := j.tasks.Find(ctx, bson.M{
		"isDeleted": true,
		"deletedAt": bson.M{"$lt": cutoff},
	}, options.Find().SetProjection(bson.M{"_id": 1, "userId": 1}))
	if err != nil {
		logger.Error("Failed to load expired trash", "error", err)
		return err
	}
	defer cursor.Close(ctx)

	var expired []struct {
		ID     primitive.ObjectID `bson:"_id"`
		UserID string             `bson:"userId"`
	}
	if err := cursor.All(ctx, &expired); err != nil {
		logger.Error("Failed to decode expired trash", "error", err)
		return err
	}

	purged := 0
	for _, task := range expired {
		if err := j.purgeTask(ctx, task.ID); err != nil {
			logger.Warn("Failed to purge task", "task_id", task.ID.Hex(), "user_id", task.UserID, "error", err)
			continue
		}
		purged++
	}

	logger.Info("Trash purge complete", "purged", purged, "duration", time.Since(start))
	return nil
}

// purgeTask removes one task with its dependents
func (j *TrashCleanupJob) purgeTask(ctx context.Context, taskID primitive.ObjectID) error {
	if _, err := j.subtasks.DeleteMany(ctx, bson.M{"taskId": taskID}); err != nil {
		return err
	}
	if _, err := j.comments.DeleteMany(ctx, bson.M{"taskId": taskID}); err != nil {
		return err
	}
	_, err := j.tasks.DeleteOne(ctx, bson.M{"_id": taskID, "isDeleted": true})
	return err
}
