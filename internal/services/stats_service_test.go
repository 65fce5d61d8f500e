package services

import (
	"testing"
	"time"

	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// June 15 2025 is a Sunday
var statsToday = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

func day(offset int) string {
	return statsToday.AddDate(0, 0, offset).Format(dateKey)
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{
			name:  "no completions",
			dates: nil,
			want:  0,
		},
		{
			name:  "today only",
			dates: []string{day(0)},
			want:  1,
		},
		{
			name:  "three days ending today",
			dates: []string{day(-2), day(-1), day(0)},
			want:  3,
		},
		{
			name:  "streak ending yesterday survives the grace day",
			dates: []string{day(-2), day(-1)},
			want:  2,
		},
		{
			name:  "streak ending before yesterday is broken",
			dates: []string{day(-3), day(-2)},
			want:  0,
		},
		{
			name:  "gap behind today stops the count",
			dates: []string{day(0), day(-2), day(-3)},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make(map[string]bool, len(tt.dates))
			for _, d := range tt.dates {
				dates[d] = true
			}
			if got := computeStreak(dates, statsToday); got != tt.want {
				t.Errorf("computeStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		want      float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
		{1, 8, 12.5},
	}

	for _, tt := range tests {
		if got := completionRate(tt.completed, tt.total); got != tt.want {
			t.Errorf("completionRate(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestCompletedDatesCollapsesToUTCDays(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	timestamps := []time.Time{
		time.Date(2025, 6, 14, 23, 0, 0, 0, est),  // 2025-06-15 in UTC
		time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC),
	}

	dates := completedDates(timestamps)
	if len(dates) != 1 {
		t.Fatalf("expected 1 distinct date, got %d: %v", len(dates), dates)
	}
	if !dates["2025-06-15"] {
		t.Errorf("expected 2025-06-15 in the set, got %v", dates)
	}
}

func TestProductivityChart(t *testing.T) {
	timestamps := []time.Time{
		statsToday,
		statsToday.Add(-2 * time.Hour),
		statsToday.AddDate(0, 0, -6),
	}

	series := productivityChart(timestamps, statsToday)

	if len(series.Labels) != 7 || len(series.Data) != 7 {
		t.Fatalf("expected 7 labels and 7 data points, got %d/%d", len(series.Labels), len(series.Data))
	}
	if series.Data[6] != 2 {
		t.Errorf("today's bucket = %d, want 2", series.Data[6])
	}
	if series.Data[0] != 1 {
		t.Errorf("oldest bucket = %d, want 1", series.Data[0])
	}
	for i := 1; i < 6; i++ {
		if series.Data[i] != 0 {
			t.Errorf("bucket %d = %d, want 0", i, series.Data[i])
		}
	}
	if series.Labels[6] != "Sun" {
		t.Errorf("today's label = %q, want Sun", series.Labels[6])
	}
	if series.Labels[0] != "Mon" {
		t.Errorf("oldest label = %q, want Mon", series.Labels[0])
	}
}

func TestProjectsChart(t *testing.T) {
	workID := primitive.NewObjectID()
	homeID := primitive.NewObjectID()
	danglingID := primitive.NewObjectID()
	names := map[primitive.ObjectID]string{
		workID: "Work",
		homeID: "Home",
	}

	facts := []taskFact{
		{ProjectID: &workID},
		{ProjectID: &workID},
		{ProjectID: &homeID},
		{ProjectID: &danglingID}, // deleted project, grouped as unassigned
		{},
	}

	series := projectsChart(facts, names)

	wantLabels := []string{"No Project", "Work", "Home"}
	wantData := []int{2, 2, 1}
	if len(series.Labels) != len(wantLabels) {
		t.Fatalf("labels = %v, want %v", series.Labels, wantLabels)
	}
	for i := range wantLabels {
		if series.Labels[i] != wantLabels[i] {
			t.Errorf("label %d = %q, want %q", i, series.Labels[i], wantLabels[i])
		}
		if series.Data[i] != wantData[i] {
			t.Errorf("data %d = %d, want %d", i, series.Data[i], wantData[i])
		}
	}
}

func TestPriorityChartFixedOrder(t *testing.T) {
	facts := []taskFact{
		{Priority: models.TaskPriorityLow},
		{Priority: models.TaskPriorityMedium},
		{Priority: models.TaskPriorityMedium},
		{Priority: models.TaskPriorityHigh},
		{Priority: models.TaskPriorityHigh},
		{Priority: models.TaskPriorityHigh},
	}

	series := priorityChart(facts)

	if len(series.Data) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(series.Data))
	}
	// Fixed [high, medium, low] order
	if series.Data[0] != 3 || series.Data[1] != 2 || series.Data[2] != 1 {
		t.Errorf("data = %v, want [3 2 1]", series.Data)
	}
}

func TestWeekdayChartMondayOrigin(t *testing.T) {
	timestamps := []time.Time{
		time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC),  // Monday
		time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC),  // Monday
		time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), // Sunday
	}

	series := weekdayChart(timestamps)

	if len(series.Data) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(series.Data))
	}
	if series.Data[0] != 2 {
		t.Errorf("Monday bucket = %d, want 2", series.Data[0])
	}
	if series.Data[6] != 1 {
		t.Errorf("Sunday bucket = %d, want 1", series.Data[6])
	}
	for i := 1; i < 6; i++ {
		if series.Data[i] != 0 {
			t.Errorf("bucket %d = %d, want 0", i, series.Data[i])
		}
	}
}
