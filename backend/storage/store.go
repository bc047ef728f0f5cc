// Package storage is the flat-file record store: the subject list, one
// details document per subject and one progress-record log per
// (subject, test) pair, each stored as a whole JSON file that is read and
// rewritten as a unit. There are no partial updates and no atomic renames;
// a per-subject mutex serializes writers inside this process, which is the
// only concurrency guarantee offered.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"studyquest/backend/models"
)

// DefaultSubjects seeds the subject list when no subjects file exists yet.
var DefaultSubjects = []string{"Math", "Science", "History", "English"}

var nonWord = regexp.MustCompile(`[^0-9A-Za-z_]`)

// SafeName converts a subject name into its on-disk form by replacing
// every non-word character with an underscore. Distinct names can collapse
// to the same safe name and then share a file; last writer wins.
func SafeName(subjectName string) string {
	return nonWord.ReplaceAllString(subjectName, "_")
}

type Store struct {
	SubjectsFile string
	DetailsDir   string
	ProgressDir  string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(subjectsFile, detailsDir, progressDir string) *Store {
	return &Store{
		SubjectsFile: subjectsFile,
		DetailsDir:   detailsDir,
		ProgressDir:  progressDir,
		locks:        make(map[string]*sync.Mutex),
	}
}

// Lock serializes access to one subject's files and returns the unlock
// function. The key is the subject name, so two distinct names that
// normalize to the same safe filename are still not serialized against
// each other (known limitation, see SafeName).
func (s *Store) Lock(subjectName string) func() {
	s.mu.Lock()
	l, ok := s.locks[subjectName]
	if !ok {
		l = &sync.Mutex{}
		s.locks[subjectName] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// EnsureFileStructure creates the data directories and, when the subjects
// file is missing, seeds it with the default subjects and their empty
// details documents.
func (s *Store) EnsureFileStructure() error {
	for _, dir := range []string{s.DetailsDir, s.ProgressDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(s.SubjectsFile); os.IsNotExist(err) {
		if err := s.SaveSubjects(DefaultSubjects); err != nil {
			return err
		}
		for _, subject := range DefaultSubjects {
			if _, err := os.Stat(s.detailsFile(subject)); os.IsNotExist(err) {
				if err := s.SaveDetails(subject, models.NewSubjectDetails()); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (s *Store) detailsFile(subjectName string) string {
	return filepath.Join(s.DetailsDir, SafeName(subjectName)+".json")
}

func (s *Store) progressFile(subjectName, testID string) string {
	return filepath.Join(s.ProgressDir, fmt.Sprintf("%s_%s_progress.json", SafeName(subjectName), testID))
}

// LoadSubjects returns the subject name list. A missing file is recreated
// with the defaults; an unreadable or corrupt file falls back to the
// defaults without touching the file.
func (s *Store) LoadSubjects() []string {
	data, err := os.ReadFile(s.SubjectsFile)
	if err != nil {
		if os.IsNotExist(err) {
			_ = s.SaveSubjects(DefaultSubjects)
		}
		return append([]string{}, DefaultSubjects...)
	}

	var subjects []string
	if err := json.Unmarshal(data, &subjects); err != nil {
		return append([]string{}, DefaultSubjects...)
	}
	return subjects
}

func (s *Store) SaveSubjects(subjects []string) error {
	return writeJSON(s.SubjectsFile, subjects)
}

// LoadDetails returns the details document for a subject. Missing or
// corrupt files decode to an empty document; corruption is never fatal.
func (s *Store) LoadDetails(subjectName string) *models.SubjectDetails {
	details := models.NewSubjectDetails()
	data, err := os.ReadFile(s.detailsFile(subjectName))
	if err != nil {
		return details
	}
	if err := json.Unmarshal(data, details); err != nil {
		return models.NewSubjectDetails()
	}
	if details.Resources == nil {
		details.Resources = []json.RawMessage{}
	}
	if details.Tests == nil {
		details.Tests = models.TestList{}
	}
	if details.StudyMaterials == nil {
		details.StudyMaterials = []json.RawMessage{}
	}
	return details
}

func (s *Store) SaveDetails(subjectName string, details *models.SubjectDetails) error {
	return writeJSON(s.detailsFile(subjectName), details)
}

// LoadRecords returns the progress-record log of a test, empty when the
// file is missing or corrupt.
func (s *Store) LoadRecords(subjectName, testID string) *models.RecordLog {
	log := models.NewRecordLog()
	data, err := os.ReadFile(s.progressFile(subjectName, testID))
	if err != nil {
		return log
	}
	if err := json.Unmarshal(data, log); err != nil {
		return models.NewRecordLog()
	}
	if log.Records == nil {
		log.Records = models.RecordList{}
	}
	return log
}

func (s *Store) SaveRecords(subjectName, testID string, log *models.RecordLog) error {
	return writeJSON(s.progressFile(subjectName, testID), log)
}

// DeleteRecords removes the progress file of a test. A missing file is
// not an error.
func (s *Store) DeleteRecords(subjectName, testID string) error {
	err := os.Remove(s.progressFile(subjectName, testID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DeleteSubjectFiles removes a subject's details file and every progress
// file belonging to it.
func (s *Store) DeleteSubjectFiles(subjectName string) error {
	if err := os.Remove(s.detailsFile(subjectName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return s.forEachProgressFile(subjectName, func(path, _ string) error {
		return os.Remove(path)
	})
}

// RenameSubjectFiles relocates the details file and every progress file
// from the old subject name to the new one.
func (s *Store) RenameSubjectFiles(oldName, newName string) error {
	oldDetails := s.detailsFile(oldName)
	if _, err := os.Stat(oldDetails); err == nil {
		details := s.LoadDetails(oldName)
		if err := s.SaveDetails(newName, details); err != nil {
			return err
		}
		if err := os.Remove(oldDetails); err != nil {
			return err
		}
	}

	safeOld := SafeName(oldName)
	safeNew := SafeName(newName)
	return s.forEachProgressFile(oldName, func(path, name string) error {
		newPath := filepath.Join(s.ProgressDir, safeNew+strings.TrimPrefix(name, safeOld))
		return os.Rename(path, newPath)
	})
}

// forEachProgressFile runs fn over every progress file whose name starts
// with the subject's safe prefix.
func (s *Store) forEachProgressFile(subjectName string, fn func(path, name string) error) error {
	entries, err := os.ReadDir(s.ProgressDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	prefix := SafeName(subjectName) + "_"
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if err := fn(filepath.Join(s.ProgressDir, entry.Name()), entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
