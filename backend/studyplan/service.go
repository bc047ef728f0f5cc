// Package studyplan mutates the nested subject documents and assembles the
// aggregated views. Every operation loads the whole document from the
// store, changes one node in memory and writes the whole document back,
// serialized per subject by the store's lock.
package studyplan

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyquest/backend/models"
	"studyquest/backend/progress"
	"studyquest/backend/storage"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
	maxSubjectName  = 50
)

// invalidNameChars are the characters a subject name may not contain, to
// keep the derived filenames portable.
const invalidNameChars = `/\:*?"<>|`

// Notifier receives the side-effect notifications triggered by recording
// progress. Failures are surfaced to the caller as status messages and
// never roll back persisted data.
type Notifier interface {
	DailyProgress(subjectName, testName string, completed models.RecordList) error
	TestComplete(subjectName, testName string, progressPct float64, completedUnits, totalUnits int) error
}

type Service struct {
	Store    *storage.Store
	Notifier Notifier // optional
}

func NewService(store *storage.Store, notifier Notifier) *Service {
	return &Service{Store: store, Notifier: notifier}
}

// ValidateSubjectName trims and checks a subject name: non-empty, at most
// 50 characters, free of path-unsafe characters.
func ValidateSubjectName(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", validationError("subject name cannot be empty")
	}
	if len(cleaned) > maxSubjectName {
		return "", validationError("subject name is too long (max %d characters)", maxSubjectName)
	}
	if i := strings.IndexAny(cleaned, invalidNameChars); i >= 0 {
		return "", validationError("subject name contains invalid character: %c", cleaned[i])
	}
	return cleaned, nil
}

// Subjects returns the subject name list.
func (s *Service) Subjects() []string {
	return s.Store.LoadSubjects()
}

// SubjectStats counts tests and resources per subject for the management
// list.
func (s *Service) SubjectStats() map[string]models.SubjectStats {
	stats := map[string]models.SubjectStats{}
	for _, name := range s.Store.LoadSubjects() {
		details := s.Store.LoadDetails(name)
		resources := 0
		for _, test := range details.Tests {
			for _, topic := range test.Topics {
				resources += len(topic.Resources)
			}
		}
		stats[name] = models.SubjectStats{Tests: len(details.Tests), Resources: resources}
	}
	return stats
}

// AddSubject validates the name, appends it to the subject list and
// creates the empty details document.
func (s *Service) AddSubject(name string) (string, error) {
	cleaned, err := ValidateSubjectName(name)
	if err != nil {
		return "", err
	}

	subjects := s.Store.LoadSubjects()
	for _, existing := range subjects {
		if existing == cleaned {
			return "", validationError("subject %q already exists", cleaned)
		}
	}

	subjects = append(subjects, cleaned)
	if err := s.Store.SaveSubjects(subjects); err != nil {
		return "", err
	}
	if err := s.Store.SaveDetails(cleaned, models.NewSubjectDetails()); err != nil {
		return "", err
	}
	return cleaned, nil
}

// RenameSubject renames a subject in place and relocates its details and
// progress files to the new safe name.
func (s *Service) RenameSubject(oldName, newName string) (string, error) {
	cleaned, err := ValidateSubjectName(newName)
	if err != nil {
		return "", err
	}

	subjects := s.Store.LoadSubjects()
	index := -1
	for i, existing := range subjects {
		if existing == oldName {
			index = i
			break
		}
	}
	if index < 0 {
		return "", ErrSubjectNotFound
	}
	if cleaned != oldName {
		for _, existing := range subjects {
			if existing == cleaned {
				return "", validationError("subject %q already exists", cleaned)
			}
		}
	}

	unlock := s.Store.Lock(oldName)
	defer unlock()

	subjects[index] = cleaned
	if err := s.Store.SaveSubjects(subjects); err != nil {
		return "", err
	}
	if err := s.Store.RenameSubjectFiles(oldName, cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}

// DeleteSubject removes a subject from the list and deletes its details
// document and every associated progress file.
func (s *Service) DeleteSubject(name string) error {
	subjects := s.Store.LoadSubjects()
	remaining := make([]string, 0, len(subjects))
	found := false
	for _, existing := range subjects {
		if existing == name {
			found = true
			continue
		}
		remaining = append(remaining, existing)
	}
	if !found {
		return ErrSubjectNotFound
	}

	unlock := s.Store.Lock(name)
	defer unlock()

	if err := s.Store.SaveSubjects(remaining); err != nil {
		return err
	}
	return s.Store.DeleteSubjectFiles(name)
}

// SubjectDetails is the normalizing read path: it loads the document,
// assigns ids to any test lacking one, recomputes every derived value,
// sorts the tests and persists the corrected document before returning it.
func (s *Service) SubjectDetails(name string) (*models.SubjectDetails, error) {
	if !s.subjectExists(name) {
		return nil, ErrSubjectNotFound
	}

	unlock := s.Store.Lock(name)
	defer unlock()

	details := s.Store.LoadDetails(name)
	s.NormalizeSubject(name, details)
	sortTestsByDate(details.Tests)
	if err := s.Store.SaveDetails(name, details); err != nil {
		return nil, err
	}
	return details, nil
}

// NormalizeSubject repairs a details document in memory: missing test ids
// are assigned, nil topic/resource lists are initialized and the derived
// progress/completed/scores values are recomputed from the record logs.
func (s *Service) NormalizeSubject(name string, details *models.SubjectDetails) {
	for _, test := range details.Tests {
		if test.ID == "" {
			test.ID = uuid.NewString()
		}
		if test.Topics == nil {
			test.Topics = models.TopicList{}
		}
		log := s.Store.LoadRecords(name, test.ID)
		attachDerived(test, log)
	}
}

// attachDerived overwrites the stored progress, completed and scores
// fields with values recomputed from the record log.
func attachDerived(test *models.Test, log *models.RecordLog) {
	test.Progress = progress.Calculate(test, log)
	for _, topic := range test.Topics {
		if topic.Resources == nil {
			topic.Resources = models.ResourceList{}
		}
		for _, res := range topic.Resources {
			res.Completed = log.Records.CompletedFor(res.ID)
			res.Scores = log.Records.ScoresFor(res.ID)
		}
	}
}

// sortTestsByDate orders dated tests ascending and moves undated tests to
// the end, preserving their relative order.
func sortTestsByDate(tests models.TestList) {
	sort.SliceStable(tests, func(i, j int) bool {
		di, dj := tests[i].Date, tests[j].Date
		if di == "" {
			return false
		}
		if dj == "" {
			return true
		}
		ti, erri := time.Parse(dateLayout, di)
		tj, errj := time.Parse(dateLayout, dj)
		if erri != nil || errj != nil {
			return erri == nil && errj != nil
		}
		return ti.Before(tj)
	})
}

func (s *Service) subjectExists(name string) bool {
	for _, existing := range s.Store.LoadSubjects() {
		if existing == name {
			return true
		}
	}
	return false
}
