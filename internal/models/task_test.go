package models

import (
	"testing"
	"time"
)

func TestTaskTrashTransitions(t *testing.T) {
	task := Task{Title: "write report"}
	if !task.TrashConsistent() {
		t.Fatal("fresh task should be trash-consistent")
	}

	now := time.Now().UTC()
	task.MarkDeleted(now)

	if !task.IsDeleted {
		t.Error("MarkDeleted did not set isDeleted")
	}
	if task.DeletedAt == nil || !task.DeletedAt.Equal(now) {
		t.Errorf("deletedAt = %v, want %v", task.DeletedAt, now)
	}
	if !task.TrashConsistent() {
		t.Error("trashed task should be trash-consistent")
	}

	later := now.Add(time.Hour)
	task.MarkRestored(later)

	if task.IsDeleted {
		t.Error("MarkRestored did not clear isDeleted")
	}
	if task.DeletedAt != nil {
		t.Errorf("deletedAt = %v, want nil after restore", task.DeletedAt)
	}
	if !task.UpdatedAt.Equal(later) {
		t.Errorf("updatedAt = %v, want %v", task.UpdatedAt, later)
	}
	if !task.TrashConsistent() {
		t.Error("restored task should be trash-consistent")
	}
}

func TestTrashConsistentDetectsDrift(t *testing.T) {
	now := time.Now().UTC()

	flagWithoutStamp := Task{IsDeleted: true}
	if flagWithoutStamp.TrashConsistent() {
		t.Error("isDeleted without deletedAt must be inconsistent")
	}

	stampWithoutFlag := Task{DeletedAt: &now}
	if stampWithoutFlag.TrashConsistent() {
		t.Error("deletedAt without isDeleted must be inconsistent")
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh} {
		if !ValidPriority(p) {
			t.Errorf("ValidPriority(%q) = false, want true", p)
		}
	}
	for _, p := range []TaskPriority{"", "urgent", "HIGH"} {
		if ValidPriority(p) {
			t.Errorf("ValidPriority(%q) = true, want false", p)
		}
	}
}
