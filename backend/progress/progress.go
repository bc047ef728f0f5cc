// Package progress derives every displayed number from a test's declared
// resource requirements and its progress-record log. Nothing here mutates
// documents; stored progress/completed values are ignored in favor of
// recomputation.
package progress

import (
	"math"
	"sort"
	"time"

	"studyquest/backend/models"
)

const dateLayout = "2006-01-02"

// Calculate returns the completion percentage of a test given its record
// log: round(100*completed/required, 1). A test without an id reports 0,
// as does a test requiring zero resource units. The result is not clamped,
// so out-of-band count edits can push it past 100.
func Calculate(test *models.Test, log *models.RecordLog) float64 {
	if test == nil || test.ID == "" {
		return 0
	}

	required := test.TotalRequired()
	if required == 0 {
		return 0
	}

	completed := len(log.Records)
	return Round1(100 * float64(completed) / float64(required))
}

// DateCounts groups records by creation date, summing duplicates, and
// returns the buckets in ascending calendar order.
func DateCounts(log *models.RecordLog) []models.DateCount {
	counts := map[string]int{}
	for _, r := range log.Records {
		if r.Date != "" {
			counts[r.Date]++
		}
	}
	return SortDateCounts(counts)
}

// TopicCounts groups records by the topic-name snapshot taken when each
// record was created, summing duplicates.
func TopicCounts(log *models.RecordLog) map[string]int {
	counts := map[string]int{}
	for _, r := range log.Records {
		counts[r.TopicName]++
	}
	return counts
}

// Streak returns the current streak: the number of consecutive calendar
// days with activity, counting back from the most recent entry, provided
// that entry is today or yesterday. Older latest activity means the streak
// is broken and reports 0.
func Streak(daily []models.DateCount) int {
	return streakFrom(daily, today())
}

func streakFrom(daily []models.DateCount, today time.Time) int {
	if len(daily) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(daily))
	for _, d := range daily {
		parsed, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			continue
		}
		dates = append(dates, parsed)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	latest := dates[0]
	if !latest.Equal(today) && !latest.Equal(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	last := latest
	for _, current := range dates[1:] {
		if !current.Equal(last.AddDate(0, 0, -1)) {
			break
		}
		streak++
		last = current
	}
	return streak
}

// IsPast reports whether the date is strictly before today. Missing or
// unparseable dates fail open to "upcoming".
func IsPast(dateStr string) bool {
	parsed, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return false
	}
	return parsed.Before(today())
}

// DaysRemaining returns the number of days until the date, negative for
// past dates and 0 when the date does not parse.
func DaysRemaining(dateStr string) int {
	parsed, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return 0
	}
	return int(parsed.Sub(today()).Hours() / 24)
}

// SubjectSource is the read side of the record store that the cross-subject
// scans need.
type SubjectSource interface {
	LoadSubjects() []string
	LoadDetails(subjectName string) *models.SubjectDetails
	LoadRecords(subjectName, testID string) *models.RecordLog
}

// Upcoming scans every subject and returns the tests whose date falls in
// [today, today+windowDays], progress attached, sorted ascending by date.
// Tests with missing or unparseable dates are silently skipped.
func Upcoming(src SubjectSource, windowDays int) []models.TestOverview {
	upcoming := []models.TestOverview{}
	now := today()
	end := now.AddDate(0, 0, windowDays)

	for _, subjectName := range src.LoadSubjects() {
		details := src.LoadDetails(subjectName)
		for _, test := range details.Tests {
			if test.Date == "" {
				continue
			}
			testDate, err := time.Parse(dateLayout, test.Date)
			if err != nil {
				continue
			}
			if testDate.Before(now) || testDate.After(end) {
				continue
			}
			upcoming = append(upcoming, models.TestOverview{
				TestID:      test.ID,
				TestName:    test.Name,
				Date:        test.Date,
				SubjectName: subjectName,
				Progress:    Calculate(test, src.LoadRecords(subjectName, test.ID)),
			})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	return upcoming
}

// SortDateCounts converts a date histogram into a list sorted ascending by
// calendar date.
func SortDateCounts(counts map[string]int) []models.DateCount {
	out := make([]models.DateCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, models.DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		di, _ := time.Parse(dateLayout, out[i].Date)
		dj, _ := time.Parse(dateLayout, out[j].Date)
		return di.Before(dj)
	})
	return out
}

// Round1 rounds to one decimal place, the precision every percentage in
// the app is reported at.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
