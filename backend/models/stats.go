package models

// DateCount is one (date, count) bucket of a daily-activity histogram.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TestOverview is the flattened per-test row used by the dashboard and the
// upcoming-tests lists.
type TestOverview struct {
	TestID      string  `json:"test_id"`
	TestName    string  `json:"test_name"`
	Date        string  `json:"date,omitempty"`
	SubjectName string  `json:"subject_name"`
	Progress    float64 `json:"progress"`
	IsPast      bool    `json:"is_past"`
}

// DashboardSummary backs the main page.
type DashboardSummary struct {
	CompletedResources int     `json:"completed_resources"`
	UpcomingTests      int     `json:"upcoming_tests"`
	CurrentStreak      int     `json:"current_streak"`
	AvgScore           float64 `json:"avg_score"`
}

// Dashboard is the full main-page payload.
type Dashboard struct {
	Subjects      []string         `json:"subjects"`
	Tests         []TestOverview   `json:"all_tests"`
	DailyProgress []DateCount      `json:"daily_progress"`
	SubjectCounts map[string]int   `json:"subject_counts"`
	Summary       DashboardSummary `json:"stats_summary"`
}

// SubjectCompletion is the completed/required resource-unit ratio of one
// subject in the all-statistics report.
type SubjectCompletion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// SubjectPerformance aggregates test progress per subject.
type SubjectPerformance struct {
	Tests       int     `json:"tests"`
	AvgProgress float64 `json:"avg_progress"`
}

// StatsSummary carries the global totals of the all-statistics report.
type StatsSummary struct {
	TotalTests         int     `json:"total_tests"`
	TotalTopics        int     `json:"total_topics"`
	TotalResources     int     `json:"total_resources"`
	CompletedResources int     `json:"completed_resources"`
	OverallCompletion  float64 `json:"overall_completion"`
	AvgTestProgress    float64 `json:"avg_test_progress"`
}

// TestReport is a test row in the all-statistics report.
type TestReport struct {
	*Test
	SubjectName  string `json:"subject_name"`
	IsPast       bool   `json:"is_past"`
	RecordsCount int    `json:"records_count"`
}

// AllStatistics is the all-statistics report payload.
type AllStatistics struct {
	Tests              []TestReport                  `json:"all_tests"`
	DateProgress       []DateCount                   `json:"date_progress"`
	SubjectCompletion  map[string]*SubjectCompletion `json:"subject_completion"`
	SubjectPerformance map[string]*SubjectPerformance `json:"subject_performance"`
	Summary            StatsSummary                  `json:"stats_summary"`
	UpcomingTests      []TestReport                  `json:"upcoming_tests"`
}

// PastTestReport is one fully expanded past test: record log, histograms
// and score statistics attached.
type PastTestReport struct {
	*Test
	SubjectName string         `json:"subject_name"`
	Records     RecordList     `json:"records"`
	TopicCounts map[string]int `json:"topic_counts"`
	UniqueDates []string       `json:"unique_dates"`
	DateCounts  map[string]int `json:"date_counts"`
	Scores      []float64      `json:"scores"`
	AvgScore    float64        `json:"avg_score"`
}

// TestStatistics backs the single-test statistics view.
type TestStatistics struct {
	SubjectName   string         `json:"subject_name"`
	Test          *Test          `json:"test"`
	Records       RecordList     `json:"records"`
	DateCounts    []DateCount    `json:"date_counts"`
	TopicCounts   map[string]int `json:"topic_counts"`
	Scores        []float64      `json:"all_scores"`
	AvgScore      float64        `json:"avg_score"`
	SortedDates   []string       `json:"sorted_dates"`
	DaysRemaining int            `json:"days_remaining"`
}

// TrackProgress backs the progress-tracking view.
type TrackProgress struct {
	SubjectName string         `json:"subject_name"`
	Test        *Test          `json:"test"`
	Records     RecordList     `json:"records"`
	DateCounts  []DateCount    `json:"date_counts"`
	TopicCounts map[string]int `json:"topic_counts"`
}

// SubjectStats is the per-subject row of the subject-management list.
type SubjectStats struct {
	Tests     int `json:"tests"`
	Resources int `json:"resources"`
}
