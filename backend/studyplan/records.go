package studyplan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyquest/backend/models"
	"studyquest/backend/progress"
)

// newRecord builds an immutable progress event, snapshotting the current
// topic and resource names.
func newRecord(topic *models.Topic, res *models.Resource, notes string, score *float64) *models.ProgressRecord {
	now := time.Now()
	return &models.ProgressRecord{
		ID:           uuid.NewString(),
		TopicID:      topic.ID,
		TopicName:    topic.Name,
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Notes:        notes,
		Date:         now.Format(dateLayout),
		Timestamp:    now.Format(timestampLayout),
		Score:        score,
	}
}

// AddRecord appends a progress event for a resource. The record is
// persisted first; the daily-progress notification (first record of the
// day for this test) and the completion notification (progress landing on
// exactly 100) run afterwards, and their failures only show up in the
// returned status messages.
func (s *Service) AddRecord(subjectName, testID, topicID, resourceID, notes string) (*models.ProgressRecord, []string, error) {
	if topicID == "" || resourceID == "" {
		return nil, nil, validationError("please select a topic and resource")
	}

	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, nil, ErrTestNotFound
	}
	topic := test.FindTopic(topicID)
	if topic == nil {
		return nil, nil, ErrTopicNotFound
	}
	res := topic.FindResource(resourceID)
	if res == nil {
		return nil, nil, ErrResourceNotFound
	}

	log := s.Store.LoadRecords(subjectName, testID)
	record := newRecord(topic, res, notes, nil)
	log.Records = append(log.Records, record)
	if err := s.Store.SaveRecords(subjectName, testID, log); err != nil {
		return nil, nil, err
	}

	var statuses []string
	if s.Notifier != nil {
		todays := log.Records.OnDate(record.Date)
		if len(todays) == 1 {
			if err := s.Notifier.DailyProgress(subjectName, test.Name, models.RecordList{record}); err != nil {
				statuses = append(statuses, fmt.Sprintf("failed to send daily progress email: %v", err))
			} else {
				statuses = append(statuses, fmt.Sprintf("daily progress email sent for %s", test.Name))
			}
		}

		pct := progress.Calculate(test, log)
		if pct == 100 {
			if err := s.Notifier.TestComplete(subjectName, test.Name, pct, len(log.Records), test.TotalRequired()); err != nil {
				statuses = append(statuses, fmt.Sprintf("failed to send completion email: %v", err))
			} else {
				statuses = append(statuses, fmt.Sprintf("test completion email sent for %s", test.Name))
			}
		}
	}

	return record, statuses, nil
}

// AdjustResult reports the state after an increment or decrement.
type AdjustResult struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Progress  float64 `json:"progress"`
}

// resourceLocation is one entry of the on-demand index AdjustProgress
// builds by scanning every subject.
type resourceLocation struct {
	subjectName string
	test        *models.Test
	topic       *models.Topic
	resource    *models.Resource
}

// locateResource scans all subjects for a resource id, first match wins.
// Resource ids are uuid4, so cross-subject collisions are theoretical.
func (s *Service) locateResource(resourceID string) (*resourceLocation, bool) {
	for _, subjectName := range s.Store.LoadSubjects() {
		details := s.Store.LoadDetails(subjectName)
		for _, test := range details.Tests {
			if test.ID == "" {
				continue
			}
			for _, topic := range test.Topics {
				for _, res := range topic.Resources {
					if res.ID == resourceID {
						return &resourceLocation{
							subjectName: subjectName,
							test:        test,
							topic:       topic,
							resource:    res,
						}, true
					}
				}
			}
		}
	}
	return nil, false
}

// AdjustProgress increments or decrements a resource's completed count
// given only its id. The new count is clamped to [0, count]; an increment
// appends a record (optionally carrying a score) and a decrement removes
// the most recently appended record for that resource.
func (s *Service) AdjustProgress(resourceID string, change int, score *float64) (*AdjustResult, error) {
	loc, ok := s.locateResource(resourceID)
	if !ok {
		return nil, ErrResourceNotFound
	}

	unlock := s.Store.Lock(loc.subjectName)
	defer unlock()

	log := s.Store.LoadRecords(loc.subjectName, loc.test.ID)
	completed := log.Records.CompletedFor(resourceID)
	total := coerceCount(loc.resource.Count)

	newCompleted := completed + change
	if newCompleted < 0 {
		newCompleted = 0
	}
	if newCompleted > total {
		newCompleted = total
	}

	switch {
	case change > 0 && newCompleted > completed:
		log.Records = append(log.Records, newRecord(loc.topic, loc.resource, "", score))
	case change < 0 && newCompleted < completed:
		for i := len(log.Records) - 1; i >= 0; i-- {
			if log.Records[i].ResourceID == resourceID {
				log.Records = append(log.Records[:i], log.Records[i+1:]...)
				break
			}
		}
	}

	if err := s.Store.SaveRecords(loc.subjectName, loc.test.ID, log); err != nil {
		return nil, err
	}

	return &AdjustResult{
		Completed: newCompleted,
		Total:     total,
		Progress:  progress.Calculate(loc.test, log),
	}, nil
}

// TodaysResources returns the records created today for a test.
func (s *Service) TodaysResources(subjectName, testID string) models.RecordList {
	log := s.Store.LoadRecords(subjectName, testID)
	return log.Records.OnDate(time.Now().Format(dateLayout))
}
