package studyplan

import (
	"strings"

	"github.com/google/uuid"

	"studyquest/backend/models"
)

// coerceCount clamps a resource's required count to at least 1. Invalid
// input never fails, it just becomes 1.
func coerceCount(count int) int {
	if count < 1 {
		return 1
	}
	return count
}

// AddTest appends a new test with a fresh id and empty topics.
func (s *Service) AddTest(subjectName, name, date string) (*models.Test, error) {
	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	if name == "" || date == "" {
		return nil, validationError("please enter a valid test name and date")
	}

	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := &models.Test{
		ID:     uuid.NewString(),
		Name:   name,
		Date:   date,
		Topics: models.TopicList{},
	}
	details.Tests = append(details.Tests, test)

	if err := s.Store.SaveDetails(subjectName, details); err != nil {
		return nil, err
	}
	return test, nil
}

// EditTest overwrites a test's name and date in place.
func (s *Service) EditTest(subjectName, testID, name, date string) (*models.Test, error) {
	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	if name == "" || date == "" {
		return nil, validationError("please enter a valid test name and date")
	}

	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, ErrTestNotFound
	}
	test.Name = name
	test.Date = date

	if err := s.Store.SaveDetails(subjectName, details); err != nil {
		return nil, err
	}
	return test, nil
}

// DeleteTest removes a test from the subject and deletes its progress
// file. Deleting an id that is already gone is not an error.
func (s *Service) DeleteTest(subjectName, testID string) error {
	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	remaining := make(models.TestList, 0, len(details.Tests))
	for _, test := range details.Tests {
		if test.ID == testID {
			continue
		}
		remaining = append(remaining, test)
	}
	details.Tests = remaining

	if err := s.Store.SaveDetails(subjectName, details); err != nil {
		return err
	}
	return s.Store.DeleteRecords(subjectName, testID)
}

// AddTopic appends a topic to a test. Topic names must be unique within
// the test (case-sensitive exact match).
func (s *Service) AddTopic(subjectName, testID, name string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("please enter a valid topic name")
	}

	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, ErrTestNotFound
	}
	for _, topic := range test.Topics {
		if topic.Name == name {
			return nil, validationError("topic %q already exists", name)
		}
	}

	topic := &models.Topic{
		ID:        uuid.NewString(),
		Name:      name,
		Resources: models.ResourceList{},
	}
	test.Topics = append(test.Topics, topic)

	if err := s.Store.SaveDetails(subjectName, details); err != nil {
		return nil, err
	}
	return topic, nil
}

// EditTopic renames a topic. Historical records keep the old name
// snapshot.
func (s *Service) EditTopic(subjectName, testID, topicID, name string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("please enter a valid topic name")
	}

	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, ErrTestNotFound
	}
	topic := test.FindTopic(topicID)
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	topic.Name = name

	if err := s.Store.SaveDetails(subjectName, details); err != nil {
		return nil, err
	}
	return topic, nil
}

// DeleteTopic removes a topic from a test, discarding its resources.
func (s *Service) DeleteTopic(subjectName, testID, topicID string) error {
	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return ErrTestNotFound
	}

	remaining := make(models.TopicList, 0, len(test.Topics))
	for _, topic := range test.Topics {
		if topic.ID == topicID {
			continue
		}
		remaining = append(remaining, topic)
	}
	test.Topics = remaining

	return s.Store.SaveDetails(subjectName, details)
}

// AddResource appends a resource to a topic, coercing the required count
// to at least 1.
func (s *Service) AddResource(subjectName, testID, topicID, name string, count int) (*models.Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("please enter a valid resource name")
	}

	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, ErrTestNotFound
	}
	topic := test.FindTopic(topicID)
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	res := &models.Resource{
		ID:    uuid.NewString(),
		Name:  name,
		Count: coerceCount(count),
	}
	topic.Resources = append(topic.Resources, res)

	if err := s.Store.SaveDetails(subjectName, details); err != nil {
		return nil, err
	}
	return res, nil
}

// EditResource overwrites a resource's name and count in place.
func (s *Service) EditResource(subjectName, testID, topicID, resourceID, name string, count int) (*models.Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("please enter a valid resource name")
	}

	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return nil, ErrTestNotFound
	}
	topic := test.FindTopic(topicID)
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	res := topic.FindResource(resourceID)
	if res == nil {
		return nil, ErrResourceNotFound
	}
	res.Name = name
	res.Count = coerceCount(count)

	if err := s.Store.SaveDetails(subjectName, details); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteResource removes a resource from a topic.
func (s *Service) DeleteResource(subjectName, testID, topicID, resourceID string) error {
	unlock := s.Store.Lock(subjectName)
	defer unlock()

	details := s.Store.LoadDetails(subjectName)
	test := details.FindTest(testID)
	if test == nil {
		return ErrTestNotFound
	}
	topic := test.FindTopic(topicID)
	if topic == nil {
		return ErrTopicNotFound
	}

	remaining := make(models.ResourceList, 0, len(topic.Resources))
	for _, res := range topic.Resources {
		if res.ID == resourceID {
			continue
		}
		remaining = append(remaining, res)
	}
	topic.Resources = remaining

	return s.Store.SaveDetails(subjectName, details)
}
