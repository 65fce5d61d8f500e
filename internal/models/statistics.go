package models

// ChartSeries is a labeled data series for the statistics charts
type ChartSeries struct {
	Labels []string `json:"labels,omitempty"`
	Data   []int    `json:"data"`
}

// StatisticsCharts bundles the four chart series of the statistics view
type StatisticsCharts struct {
	// Productivity: COMPLETED events per day over the last 7 calendar days,
	// oldest to newest, zero-filled.
	Productivity ChartSeries `json:"productivity"`
	// Projects: task counts per project name, "No Project" for unassigned,
	// sorted by count descending.
	Projects ChartSeries `json:"projects"`
	// Priority: fixed [high, medium, low] counts. Labels live in the client.
	Priority ChartSeries `json:"priority"`
	// Weekday: COMPLETED events per weekday, fixed Monday..Sunday order.
	Weekday ChartSeries `json:"weekday"`
}

// StatisticsResponse is the full payload of GET /api/statistics
type StatisticsResponse struct {
	CompletedCount int              `json:"completed_count"`
	PendingCount   int              `json:"pending_count"`
	CompletionRate float64          `json:"completion_rate"`
	Streak         int              `json:"streak"`
	Charts         StatisticsCharts `json:"charts"`
}
