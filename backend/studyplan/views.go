package studyplan

import (
	"sort"
	"time"

	"studyquest/backend/models"
	"studyquest/backend/progress"
)

// Dashboard assembles the main-page summary across every subject: the
// flattened test list, the combined daily histogram, per-subject completed
// counts, the current streak and the running score average. Malformed
// stored entries were already dropped during decoding, so the scan never
// fails on a bad document.
func (s *Service) Dashboard() *models.Dashboard {
	subjects := s.Store.LoadSubjects()

	dash := &models.Dashboard{
		Subjects:      subjects,
		Tests:         []models.TestOverview{},
		SubjectCounts: map[string]int{},
	}

	daily := map[string]int{}
	scoreSum := 0.0
	scoreCount := 0

	for _, subjectName := range subjects {
		dash.SubjectCounts[subjectName] = 0
		details := s.Store.LoadDetails(subjectName)

		for _, test := range details.Tests {
			if test.ID == "" {
				continue
			}

			log := s.Store.LoadRecords(subjectName, test.ID)
			row := models.TestOverview{
				TestID:      test.ID,
				TestName:    test.Name,
				Date:        test.Date,
				SubjectName: subjectName,
				Progress:    progress.Calculate(test, log),
			}
			if test.Date != "" {
				row.IsPast = progress.IsPast(test.Date)
				if !row.IsPast {
					dash.Summary.UpcomingTests++
				}
			}
			dash.Tests = append(dash.Tests, row)

			completed := len(log.Records)
			dash.SubjectCounts[subjectName] += completed
			dash.Summary.CompletedResources += completed

			for _, record := range log.Records {
				if record.Date != "" {
					daily[record.Date]++
				}
				if record.Score != nil {
					scoreSum += *record.Score
					scoreCount++
				}
			}
		}
	}

	sortOverviewsByDate(dash.Tests)

	dailyList := progress.SortDateCounts(daily)
	if len(dailyList) > 7 {
		dailyList = dailyList[len(dailyList)-7:]
	}
	dash.DailyProgress = dailyList
	dash.Summary.CurrentStreak = progress.Streak(dailyList)
	if scoreCount > 0 {
		dash.Summary.AvgScore = scoreSum / float64(scoreCount)
	}

	return dash
}

// AllStatistics assembles the full cross-subject report: per-subject
// completion ratios and average progress, global totals, the combined date
// histogram and the next-7-days upcoming list.
func (s *Service) AllStatistics() *models.AllStatistics {
	subjects := s.Store.LoadSubjects()

	report := &models.AllStatistics{
		Tests:              []models.TestReport{},
		SubjectCompletion:  map[string]*models.SubjectCompletion{},
		SubjectPerformance: map[string]*models.SubjectPerformance{},
		UpcomingTests:      []models.TestReport{},
	}

	dateProgress := map[string]int{}
	totalProgress := map[string]float64{}

	for _, subjectName := range subjects {
		report.SubjectCompletion[subjectName] = &models.SubjectCompletion{}
		report.SubjectPerformance[subjectName] = &models.SubjectPerformance{}
	}

	for _, subjectName := range subjects {
		details := s.Store.LoadDetails(subjectName)

		for _, test := range details.Tests {
			if test.ID == "" {
				continue
			}

			report.Summary.TotalTests++
			report.SubjectPerformance[subjectName].Tests++

			log := s.Store.LoadRecords(subjectName, test.ID)
			test.Progress = progress.Calculate(test, log)
			totalProgress[subjectName] += test.Progress

			row := models.TestReport{
				Test:         test,
				SubjectName:  subjectName,
				RecordsCount: len(log.Records),
			}
			if test.Date != "" {
				row.IsPast = progress.IsPast(test.Date)
			}

			for _, record := range log.Records {
				report.Summary.CompletedResources++
				report.SubjectCompletion[subjectName].Completed++
				if record.Date != "" {
					dateProgress[record.Date]++
				}
			}

			report.Summary.TotalTopics += len(test.Topics)
			for _, topic := range test.Topics {
				for _, res := range topic.Resources {
					count := coerceCount(res.Count)
					report.Summary.TotalResources += count
					report.SubjectCompletion[subjectName].Total += count
				}
			}

			report.Tests = append(report.Tests, row)
		}
	}

	for _, subjectName := range subjects {
		perf := report.SubjectPerformance[subjectName]
		if perf.Tests > 0 {
			perf.AvgProgress = progress.Round1(totalProgress[subjectName] / float64(perf.Tests))
		}
	}

	sortReportsByDate(report.Tests)
	report.DateProgress = progress.SortDateCounts(dateProgress)

	if report.Summary.TotalResources > 0 {
		report.Summary.OverallCompletion = progress.Round1(
			100 * float64(report.Summary.CompletedResources) / float64(report.Summary.TotalResources))
	}
	if len(report.Tests) > 0 {
		sum := 0.0
		for _, row := range report.Tests {
			sum += row.Progress
		}
		report.Summary.AvgTestProgress = progress.Round1(sum / float64(len(report.Tests)))
	}

	deadline := time.Now().AddDate(0, 0, 7)
	for _, row := range report.Tests {
		if row.Date == "" || row.IsPast {
			continue
		}
		testDate, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			continue
		}
		if !testDate.After(deadline) {
			report.UpcomingTests = append(report.UpcomingTests, row)
		}
	}

	return report
}

// PastTests expands every test whose date is strictly in the past with its
// full record log, per-resource completion, date/topic histograms and
// score statistics, most recent test first.
func (s *Service) PastTests() []models.PastTestReport {
	past := []models.PastTestReport{}

	for _, subjectName := range s.Store.LoadSubjects() {
		details := s.Store.LoadDetails(subjectName)

		for _, test := range details.Tests {
			if test.ID == "" || test.Date == "" || !progress.IsPast(test.Date) {
				continue
			}

			log := s.Store.LoadRecords(subjectName, test.ID)
			attachDerived(test, log)

			uniqueDates := map[string]bool{}
			dateCounts := map[string]int{}
			scores := []float64{}
			for _, record := range log.Records {
				if record.Date != "" {
					uniqueDates[record.Date] = true
					dateCounts[record.Date]++
				}
				if record.Score != nil {
					scores = append(scores, *record.Score)
				}
			}

			sortedDates := make([]string, 0, len(uniqueDates))
			for date := range uniqueDates {
				sortedDates = append(sortedDates, date)
			}
			sort.Strings(sortedDates)

			avgScore := 0.0
			if len(scores) > 0 {
				sum := 0.0
				for _, score := range scores {
					sum += score
				}
				avgScore = sum / float64(len(scores))
			}

			past = append(past, models.PastTestReport{
				Test:        test,
				SubjectName: subjectName,
				Records:     log.Records,
				TopicCounts: progress.TopicCounts(log),
				UniqueDates: sortedDates,
				DateCounts:  dateCounts,
				Scores:      scores,
				AvgScore:    avgScore,
			})
		}
	}

	sort.SliceStable(past, func(i, j int) bool { return past[i].Date > past[j].Date })
	return past
}

// TrackProgress returns the progress-tracking view for one test: the test
// with derived per-resource completion, the full record log and both
// histograms.
func (s *Service) TrackProgress(subjectName, testID string) (*models.TrackProgress, error) {
	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, ErrTestNotFound
	}

	log := s.Store.LoadRecords(subjectName, testID)
	attachDerived(test, log)

	return &models.TrackProgress{
		SubjectName: subjectName,
		Test:        test,
		Records:     log.Records,
		DateCounts:  progress.DateCounts(log),
		TopicCounts: progress.TopicCounts(log),
	}, nil
}

// TestStatistics returns the single-test statistics view: histograms,
// score list and average, unique activity dates and days remaining.
func (s *Service) TestStatistics(subjectName, testID string) (*models.TestStatistics, error) {
	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, ErrTestNotFound
	}

	log := s.Store.LoadRecords(subjectName, testID)
	attachDerived(test, log)

	uniqueDates := map[string]bool{}
	scores := []float64{}
	for _, record := range log.Records {
		if record.Date != "" {
			uniqueDates[record.Date] = true
		}
		if record.Score != nil {
			scores = append(scores, *record.Score)
		}
	}
	sortedDates := make([]string, 0, len(uniqueDates))
	for date := range uniqueDates {
		sortedDates = append(sortedDates, date)
	}
	sort.Strings(sortedDates)

	avgScore := 0.0
	if len(scores) > 0 {
		sum := 0.0
		for _, score := range scores {
			sum += score
		}
		avgScore = sum / float64(len(scores))
	}

	stats := &models.TestStatistics{
		SubjectName: subjectName,
		Test:        test,
		Records:     log.Records,
		DateCounts:  progress.DateCounts(log),
		TopicCounts: progress.TopicCounts(log),
		Scores:      scores,
		AvgScore:    avgScore,
		SortedDates: sortedDates,
	}
	if test.Date != "" {
		stats.DaysRemaining = progress.DaysRemaining(test.Date)
	}
	return stats, nil
}

// UpcomingTests returns the tests due within the window, progress
// attached, ascending by date.
func (s *Service) UpcomingTests(windowDays int) []models.TestOverview {
	return progress.Upcoming(s.Store, windowDays)
}

func sortOverviewsByDate(tests []models.TestOverview) {
	sort.SliceStable(tests, func(i, j int) bool {
		if tests[i].Date == "" {
			return false
		}
		if tests[j].Date == "" {
			return true
		}
		return tests[i].Date < tests[j].Date
	})
}

func sortReportsByDate(tests []models.TestReport) {
	sort.SliceStable(tests, func(i, j int) bool {
		if tests[i].Date == "" {
			return false
		}
		if tests[j].Date == "" {
			return true
		}
		return tests[i].Date < tests[j].Date
	})
}
