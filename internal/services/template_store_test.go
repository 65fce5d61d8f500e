package services

import (
	"testing"

	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExpandTemplateItems(t *testing.T) {
	taskID := primitive.NewObjectID()
	items := []models.TemplateItem{
		{Content: "Check passport and tickets"},
		{Content: "Pack chargers", Completed: true},
	}

	subtasks := expandTemplateItems(taskID, items)

	if len(subtasks) != len(items) {
		t.Fatalf("expected %d subtasks, got %d", len(items), len(subtasks))
	}
	for i, st := range subtasks {
		if st.TaskID != taskID {
			t.Errorf("subtask %d task id = %v, want %v", i, st.TaskID, taskID)
		}
		if st.Title != items[i].Content {
			t.Errorf("subtask %d title = %q, want %q", i, st.Title, items[i].Content)
		}
		if st.Completed {
			t.Errorf("subtask %d starts completed; expanded subtasks must start incomplete", i)
		}
		if st.ID.IsZero() {
			t.Errorf("subtask %d has a zero id", i)
		}
	}
}

func TestExpandTemplateItemsEmpty(t *testing.T) {
	subtasks := expandTemplateItems(primitive.NewObjectID(), nil)
	if len(subtasks) != 0 {
		t.Errorf("expected no subtasks, got %d", len(subtasks))
	}
}

func TestLoadTemplateSeeds(t *testing.T) {
	seeds, err := loadTemplateSeeds()
	if err != nil {
		t.Fatalf("failed to parse embedded seeds: %v", err)
	}
	if len(seeds) == 0 {
		t.Fatal("expected at least one starter template")
	}

	for _, seed := range seeds {
		if seed.Title == "" {
			t.Error("seed with empty title")
		}
		if seed.Priority != "" && !models.ValidPriority(seed.Priority) {
			t.Errorf("seed %q has invalid priority %q", seed.Title, seed.Priority)
		}
		if len(seed.Items) == 0 {
			t.Errorf("seed %q has no checklist items", seed.Title)
		}
		for _, item := range seed.Items {
			if item.Content == "" {
				t.Errorf("seed %q has an item with empty content", seed.Title)
			}
		}
	}
}
