package models

// RecordLog is the per-test progress document, one JSON file per
// (subject, test) pair. Records are append-only events.
type RecordLog struct {
	Records RecordList `json:"records"`
}

// NewRecordLog returns an empty log, also used as the fallback when a
// progress file is missing or unreadable.
func NewRecordLog() *RecordLog {
	return &RecordLog{Records: RecordList{}}
}

// ProgressRecord is one immutable completion event. TopicName and
// ResourceName are snapshots taken at creation time and are never updated
// when the topic or resource is later renamed.
type ProgressRecord struct {
	ID           string   `json:"id"`
	TopicID      string   `json:"topic_id"`
	TopicName    string   `json:"topic_name"`
	ResourceID   string   `json:"resource_id"`
	ResourceName string   `json:"resource_name"`
	Notes        string   `json:"notes"`
	Date         string   `json:"date"`
	Timestamp    string   `json:"timestamp"`
	Score        *float64 `json:"score,omitempty"`
}

type RecordList []*ProgressRecord

func (l *RecordList) UnmarshalJSON(data []byte) error {
	*l = decodeList[ProgressRecord](data)
	return nil
}

// CompletedFor counts the records referencing the given resource.
func (l RecordList) CompletedFor(resourceID string) int {
	n := 0
	for _, r := range l {
		if r.ResourceID == resourceID {
			n++
		}
	}
	return n
}

// ScoresFor collects the scores of records referencing the given resource,
// in append order.
func (l RecordList) ScoresFor(resourceID string) []float64 {
	scores := []float64{}
	for _, r := range l {
		if r.ResourceID == resourceID && r.Score != nil {
			scores = append(scores, *r.Score)
		}
	}
	return scores
}

// OnDate returns the records created on the given YYYY-MM-DD date.
func (l RecordList) OnDate(date string) RecordList {
	out := RecordList{}
	for _, r := range l {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}
