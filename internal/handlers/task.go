package handlers

import (
	"errors"
	"strconv"

	"taskora/internal/models"
	"taskora/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles task CRUD and the trash lifecycle
type TaskHandler struct {
	tasks    *services.TaskStore
	projects *services.ProjectStore
	tags     *services.TagStore
	subtasks *services.SubtaskStore
	comments *services.CommentStore
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *services.TaskStore, projects *services.ProjectStore, tags *services.TagStore, subtasks *services.SubtaskStore, comments *services.CommentStore) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		projects: projects,
		tags:     tags,
		subtasks: subtasks,
		comments: comments,
	}
}

// List returns the caller's active tasks, filtered by query parameters
// GET /api/tasks?completed=&important=&due_today=&project=&tag=
func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	filters := services.TaskFilters{
		Important: c.Query("important") == "true",
		DueToday:  c.Query("due_today") == "true",
		ProjectID: c.Query("project"),
		TagID:     c.Query("tag"),
	}
	if raw := c.Query("completed"); raw != "" {
		if completed, err := strconv.ParseBool(raw); err == nil {
			filters.Completed = &completed
		}
	}

	tasks, err := h.tasks.ListActive(c.Context(), userID, filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// Create creates a new task
// POST /api/tasks
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	task, err := h.tasks.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// Get returns one task expanded with its project, tags, subtasks and comments
// GET /api/tasks/:id
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := h.tasks.GetByID(c.Context(), userID, taskID)
	if err != nil {
		return respondError(c, err)
	}

	response := models.TaskResponse{
		Task:     *task,
		Tags:     []models.Tag{},
		Subtasks: []models.Subtask{},
		Comments: []models.Comment{},
	}

	if task.ProjectID != nil {
		// A dangling reference is not an error for the expanded view
		if project, err := h.projects.GetByID(c.Context(), userID, *task.ProjectID); err == nil {
			response.Project = project
		} else if !errors.Is(err, services.ErrNotFound) {
			return respondError(c, err)
		}
	}

	if len(task.TagIDs) > 0 {
		tags, err := h.tags.GetByIDs(c.Context(), userID, task.TagIDs)
		if err != nil {
			return respondError(c, err)
		}
		response.Tags = tags
	}

	subtasks, err := h.subtasks.ListByTask(c.Context(), userID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	response.Subtasks = subtasks

	comments, err := h.comments.ListByTask(c.Context(), userID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	response.Comments = comments

	return c.JSON(response)
}

// Update applies a partial update to a task
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req models.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	task, err := h.tasks.Update(c.Context(), userID, taskID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// Delete moves a task to the trash
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.tasks.SoftDelete(c.Context(), userID, taskID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task moved to trash"})
}

// Trash lists the caller's soft-deleted tasks
// GET /api/tasks/trash
func (h *TaskHandler) Trash(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	tasks, err := h.tasks.ListTrash(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// Restore pulls a task out of the trash
// POST /api/tasks/:id/restore
func (h *TaskHandler) Restore(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.tasks.Restore(c.Context(), userID, taskID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task restored"})
}

// DeleteForever permanently removes a trashed task
// DELETE /api/tasks/:id/delete_forever
func (h *TaskHandler) DeleteForever(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	taskID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.tasks.HardDelete(c.Context(), userID, taskID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task permanently deleted"})
}

// EmptyTrash permanently removes every trashed task
// DELETE /api/tasks/empty_trash
func (h *TaskHandler) EmptyTrash(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	deleted, err := h.tasks.EmptyTrash(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// BulkRestore restores a batch of trashed tasks, skipping ids that cannot
// be restored
// POST /api/tasks/bulk_restore
func (h *TaskHandler) BulkRestore(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.BulkTaskRequest
	if err := c.BodyParser(&req); err != nil || len(req.TaskIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "task_ids must be a non-empty list",
		})
	}

	restored := h.tasks.BulkRestore(c.Context(), userID, req.TaskIDs)
	return c.JSON(fiber.Map{"restored": restored})
}

// BulkDeleteForever permanently deletes a batch of trashed tasks with the
// same lenient semantics as BulkRestore
// POST /api/tasks/bulk_delete_forever
func (h *TaskHandler) BulkDeleteForever(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.BulkTaskRequest
	if err := c.BodyParser(&req); err != nil || len(req.TaskIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "task_ids must be a non-empty list",
		})
	}

	deleted := h.tasks.BulkHardDelete(c.Context(), userID, req.TaskIDs)
	return c.JSON(fiber.Map{"deleted": deleted})
}
