package models

import "encoding/json"

// SubjectDetails is the per-subject document persisted as one JSON file.
// The resources and study_materials arrays predate the test-centric layout
// and are carried through untouched so older files keep round-tripping.
type SubjectDetails struct {
	Resources      []json.RawMessage `json:"resources"`
	Tests          TestList          `json:"tests"`
	StudyMaterials []json.RawMessage `json:"study_materials"`
}

// NewSubjectDetails returns the empty document written for freshly
// created subjects.
func NewSubjectDetails() *SubjectDetails {
	return &SubjectDetails{
		Resources:      []json.RawMessage{},
		Tests:          TestList{},
		StudyMaterials: []json.RawMessage{},
	}
}

// Test is a scheduled assessment. Progress is derived from the record log
// on every read; the stored value is never trusted.
type Test struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     string    `json:"date,omitempty"`
	Topics   TopicList `json:"topics"`
	Progress float64   `json:"progress"`
}

// Topic groups resources inside a test.
type Topic struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Resources ResourceList `json:"resources"`
}

// Resource is a countable study unit. Completed and Scores are derived
// from the record log, same as Test.Progress.
type Resource struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	Completed int       `json:"completed"`
	Scores    []float64 `json:"scores,omitempty"`
}

// TestList, TopicList and ResourceList decode leniently: entries that are
// not objects of the expected shape are skipped instead of failing the
// whole document, and a value that is not a list at all decodes as empty.
type TestList []*Test

type TopicList []*Topic

type ResourceList []*Resource

func (l *TestList) UnmarshalJSON(data []byte) error {
	*l = decodeList[Test](data)
	return nil
}

func (l *TopicList) UnmarshalJSON(data []byte) error {
	*l = decodeList[Topic](data)
	return nil
}

func (l *ResourceList) UnmarshalJSON(data []byte) error {
	*l = decodeList[Resource](data)
	return nil
}

func decodeList[T any](data []byte) []*T {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []*T{}
	}
	out := make([]*T, 0, len(raw))
	for _, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, &v)
	}
	return out
}

// TotalRequired sums the declared count over every resource in every topic.
func (t *Test) TotalRequired() int {
	total := 0
	for _, topic := range t.Topics {
		for _, res := range topic.Resources {
			n := res.Count
			if n < 1 {
				n = 1
			}
			total += n
		}
	}
	return total
}

// FindTopic returns the topic with the given id, or nil.
func (t *Test) FindTopic(topicID string) *Topic {
	for _, topic := range t.Topics {
		if topic.ID == topicID {
			return topic
		}
	}
	return nil
}

// FindResource returns the resource with the given id, or nil.
func (tp *Topic) FindResource(resourceID string) *Resource {
	for _, res := range tp.Resources {
		if res.ID == resourceID {
			return res
		}
	}
	return nil
}

// FindTest returns the test with the given id, or nil.
func (d *SubjectDetails) FindTest(testID string) *Test {
	for _, test := range d.Tests {
		if test.ID == testID {
			return test
		}
	}
	return nil
}
