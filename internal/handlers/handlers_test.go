package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"taskora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Mock user middleware for testing
func mockAuthMiddleware(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		return c.Next()
	}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	return resp.StatusCode, payload
}

func TestTaskHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing user ID",
			userID:         "",
			body:           models.CreateTaskRequest{Title: "Test"},
			expectedStatus: fiber.StatusUnauthorized,
			expectedError:  "Authentication required",
		},
		{
			name:           "empty title",
			userID:         "user-123",
			body:           models.CreateTaskRequest{Title: ""},
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(mockAuthMiddleware(tt.userID))

			// Validation runs before any store call, so nil stores are safe
			handler := NewTaskHandler(nil, nil, nil, nil, nil)
			app.Post("/api/tasks", handler.Create)

			status, payload := performRequest(t, app, "POST", "/api/tasks", tt.body)

			if status != tt.expectedStatus {
				t.Errorf("status = %d, want %d", status, tt.expectedStatus)
			}
			if got, _ := payload["error"].(string); got != tt.expectedError {
				t.Errorf("error = %q, want %q", got, tt.expectedError)
			}
		})
	}
}

func TestTaskHandler_BulkOps_RejectEmptyList(t *testing.T) {
	for _, route := range []string{"/api/tasks/bulk_restore", "/api/tasks/bulk_delete_forever"} {
		t.Run(route, func(t *testing.T) {
			app := fiber.New()
			app.Use(mockAuthMiddleware("user-123"))

			handler := NewTaskHandler(nil, nil, nil, nil, nil)
			app.Post("/api/tasks/bulk_restore", handler.BulkRestore)
			app.Post("/api/tasks/bulk_delete_forever", handler.BulkDeleteForever)

			status, payload := performRequest(t, app, "POST", route, models.BulkTaskRequest{TaskIDs: []string{}})

			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want %d", status, fiber.StatusBadRequest)
			}
			if got, _ := payload["error"].(string); got == "" {
				t.Error("expected an error message for empty id list")
			}
		})
	}
}

func TestTaskHandler_Get_RejectsMalformedID(t *testing.T) {
	app := fiber.New()
	app.Use(mockAuthMiddleware("user-123"))

	handler := NewTaskHandler(nil, nil, nil, nil, nil)
	app.Get("/api/tasks/:id", handler.Get)

	status, _ := performRequest(t, app, "GET", "/api/tasks/not-a-hex-id", nil)

	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, fiber.StatusBadRequest)
	}
}

func TestCommentHandler_Create_Validation(t *testing.T) {
	app := fiber.New()
	app.Use(mockAuthMiddleware("user-123"))

	handler := NewCommentHandler(nil)
	app.Post("/api/comments", handler.Create)

	status, payload := performRequest(t, app, "POST", "/api/comments",
		models.CreateCommentRequest{TaskID: "abc", Content: ""})

	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, fiber.StatusBadRequest)
	}
	if got, _ := payload["error"].(string); got != "content is required" {
		t.Errorf("error = %q, want %q", got, "content is required")
	}
}

func TestSubtaskHandler_List_RequiresTaskID(t *testing.T) {
	app := fiber.New()
	app.Use(mockAuthMiddleware("user-123"))

	handler := NewSubtaskHandler(nil)
	app.Get("/api/subtasks", handler.List)

	status, _ := performRequest(t, app, "GET", "/api/subtasks", nil)

	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, fiber.StatusBadRequest)
	}
}
