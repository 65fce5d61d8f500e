package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"taskora/internal/database"
	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// noProjectLabel groups tasks without a project in the projects chart
const noProjectLabel = "No Project"

// dateKey is the calendar-day bucket format for streak and chart math
const dateKey = "2006-01-02"

// StatsService computes the owner's productivity statistics on demand.
// Every call recomputes from current store state; nothing is cached and
// nothing is mutated. All task-derived numbers exclude trashed tasks so the
// charts match what the owner actually sees in their lists.
type StatsService struct {
	tasks    *mongo.Collection
	projects *ProjectStore
	activity *ActivityService
	metrics  *Metrics
}

// NewStatsService creates a new statistics service
func NewStatsService(mongodb *database.MongoDB, projects *ProjectStore, activity *ActivityService, metrics *Metrics) *StatsService {
	return &StatsService{
		tasks:    mongodb.Collection(database.CollectionTasks),
		projects: projects,
		activity: activity,
		metrics:  metrics,
	}
}

// taskFact is the projection of a task the charts need
type taskFact struct {
	Completed bool                `bson:"completed"`
	Priority  models.TaskPriority `bson:"priority"`
	ProjectID *primitive.ObjectID `bson:"projectId,omitempty"`
}

// Compute builds the full statistics payload for the owner as of now
func (s *StatsService) Compute(ctx context.Context, userID string) (*models.StatisticsResponse, error) {
	facts, err := s.loadTaskFacts(ctx, userID)
	if err != nil {
		return nil, err
	}

	completedEvents, err := s.activity.CompletedTimestamps(ctx, userID)
	if err != nil {
		return nil, err
	}

	projectNames, err := s.projects.NamesByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, f := range facts {
		if f.Completed {
			completed++
		}
	}
	pending := len(facts) - completed

	today := time.Now().UTC()
	dates := completedDates(completedEvents)

	s.metrics.StatsComputed()

	return &models.StatisticsResponse{
		CompletedCount: completed,
		PendingCount:   pending,
		CompletionRate: completionRate(completed, len(facts)),
		Streak:         computeStreak(dates, today),
		Charts: models.StatisticsCharts{
			Productivity: productivityChart(completedEvents, today),
			Projects:     projectsChart(facts, projectNames),
			Priority:     priorityChart(facts),
			Weekday:      weekdayChart(completedEvents),
		},
	}, nil
}

// loadTaskFacts loads the owner's non-deleted tasks, projected to the
// fields the charts consume
func (s *StatsService) loadTaskFacts(ctx context.Context, userID string) ([]taskFact, error) {
	cursor, err := s.tasks.Find(ctx,
		bson.M{"userId": userID, "isDeleted": false},
		options.Find().SetProjection(bson.M{"completed": 1, "priority": 1, "projectId": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for statistics: %w", err)
	}
	defer cursor.Close(ctx)

	facts := []taskFact{}
	if err := cursor.All(ctx, &facts); err != nil {
		return nil, fmt.Errorf("failed to decode tasks for statistics: %w", err)
	}
	return facts, nil
}

// completionRate returns completed/total as a percentage rounded to one
// decimal place, 0 when there are no tasks
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// completedDates collapses event timestamps into the set of distinct UTC
// calendar dates that saw at least one completion
func completedDates(timestamps []time.Time) map[string]bool {
	dates := make(map[string]bool, len(timestamps))
	for _, ts := range timestamps {
		dates[ts.UTC().Format(dateKey)] = true
	}
	return dates
}

// computeStreak counts consecutive calendar days with a completion, walking
// backward from today. A day without completions only breaks the streak if
// it is before yesterday: today is still in progress, so a streak ending
// yesterday counts as alive (the grace day).
func computeStreak(dates map[string]bool, today time.Time) int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if !dates[day.Format(dateKey)] {
		day = day.AddDate(0, 0, -1)
		if !dates[day.Format(dateKey)] {
			return 0
		}
	}

	streak := 0
	for dates[day.Format(dateKey)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// productivityChart returns completions per day over the last 7 calendar
// days, oldest to newest, zero-filled, labeled with 3-letter weekday names
func productivityChart(timestamps []time.Time, today time.Time) models.ChartSeries {
	counts := make(map[string]int)
	for _, ts := range timestamps {
		counts[ts.UTC().Format(dateKey)]++
	}

	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -6)

	series := models.ChartSeries{
		Labels: make([]string, 0, 7),
		Data:   make([]int, 0, 7),
	}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		series.Labels = append(series.Labels, day.Weekday().String()[:3])
		series.Data = append(series.Data, counts[day.Format(dateKey)])
	}
	return series
}

// projectsChart groups tasks by project name, "No Project" for unassigned,
// sorted by count descending (name ascending on ties for stable output)
func projectsChart(facts []taskFact, projectNames map[primitive.ObjectID]string) models.ChartSeries {
	counts := make(map[string]int)
	for _, f := range facts {
		label := noProjectLabel
		if f.ProjectID != nil {
			if name, ok := projectNames[*f.ProjectID]; ok {
				label = name
			}
		}
		counts[label]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	series := models.ChartSeries{
		Labels: labels,
		Data:   make([]int, 0, len(labels)),
	}
	for _, label := range labels {
		series.Data = append(series.Data, counts[label])
	}
	return series
}

// priorityChart returns the fixed [high, medium, low] counts. The order is
// significant: the client maps slot colors by position.
func priorityChart(facts []taskFact) models.ChartSeries {
	data := make([]int, 3)
	for _, f := range facts {
		switch f.Priority {
		case models.TaskPriorityHigh:
			data[0]++
		case models.TaskPriorityMedium:
			data[1]++
		case models.TaskPriorityLow:
			data[2]++
		}
	}
	return models.ChartSeries{Data: data}
}

// weekdayChart buckets completions into a fixed Monday..Sunday array,
// normalizing from Go's Sunday-origin weekday numbering
func weekdayChart(timestamps []time.Time) models.ChartSeries {
	data := make([]int, 7)
	for _, ts := range timestamps {
		data[(int(ts.UTC().Weekday())+6)%7]++
	}
	return models.ChartSeries{Data: data}
}
