package services

import (
	"testing"

	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveUpdateAction(t *testing.T) {
	tests := []struct {
		name         string
		wasCompleted bool
		nowCompleted bool
		want         models.ActivityAction
	}{
		{"completion transition", false, true, models.ActivityCompleted},
		{"already completed stays updated", true, true, models.ActivityUpdated},
		{"un-completing is an update", true, false, models.ActivityUpdated},
		{"no-op save still logs updated", false, false, models.ActivityUpdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveUpdateAction(tt.wasCompleted, tt.nowCompleted); got != tt.want {
				t.Errorf("resolveUpdateAction(%v, %v) = %v, want %v",
					tt.wasCompleted, tt.nowCompleted, got, tt.want)
			}
		})
	}
}

func TestParseObjectIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ids, err := parseObjectIDs([]string{a.Hex(), b.Hex()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("parseObjectIDs() = %v, want [%v %v]", ids, a, b)
	}

	if _, err := parseObjectIDs([]string{a.Hex(), "not-an-id"}); err == nil {
		t.Error("expected error for malformed id, got nil")
	}

	ids, err = parseObjectIDs(nil)
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty result, got %v", ids)
	}
}
