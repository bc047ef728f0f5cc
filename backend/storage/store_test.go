package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquest/backend/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(
		filepath.Join(dir, "subjects_data.json"),
		filepath.Join(dir, "subject_details"),
		filepath.Join(dir, "progress_records"),
	)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "Math", SafeName("Math"))
	assert.Equal(t, "Computer_Science", SafeName("Computer Science"))
	assert.Equal(t, "__________", SafeName(`/\:*?"<>| `))
	assert.Equal(t, "a_b_c", SafeName("a-b.c"))
}

func TestEnsureFileStructureSeedsDefaults(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	assert.Equal(t, DefaultSubjects, store.LoadSubjects())
	for _, subject := range DefaultSubjects {
		details := store.LoadDetails(subject)
		assert.Empty(t, details.Tests)
	}

	// Second run leaves existing data alone
	require.NoError(t, store.SaveSubjects([]string{"Only"}))
	require.NoError(t, store.EnsureFileStructure())
	assert.Equal(t, []string{"Only"}, store.LoadSubjects())
}

func TestLoadSubjectsMissingFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.DetailsDir, 0o755))

	// Missing file returns the defaults and recreates the file
	assert.Equal(t, DefaultSubjects, store.LoadSubjects())
	_, err := os.Stat(store.SubjectsFile)
	assert.NoError(t, err)
}

func TestLoadSubjectsCorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.SubjectsFile, []byte("{not json"), 0o644))

	assert.Equal(t, DefaultSubjects, store.LoadSubjects())
}

func TestDetailsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	details := models.NewSubjectDetails()
	details.Tests = append(details.Tests, &models.Test{
		ID:   "t1",
		Name: "Midterm",
		Date: "2026-09-10",
		Topics: models.TopicList{
			{ID: "top1", Name: "Algebra", Resources: models.ResourceList{
				{ID: "res1", Name: "Practice Set", Count: 4},
			}},
		},
	})
	require.NoError(t, store.SaveDetails("Math", details))

	loaded := store.LoadDetails("Math")
	require.Len(t, loaded.Tests, 1)
	assert.Equal(t, "Midterm", loaded.Tests[0].Name)
	require.Len(t, loaded.Tests[0].Topics, 1)
	assert.Equal(t, 4, loaded.Tests[0].Topics[0].Resources[0].Count)
}

func TestLoadDetailsMissingOrCorrupt(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	missing := store.LoadDetails("Nope")
	assert.Empty(t, missing.Tests)
	assert.NotNil(t, missing.Resources)

	require.NoError(t, os.WriteFile(store.detailsFile("Broken"), []byte("][ nope"), 0o644))
	corrupt := store.LoadDetails("Broken")
	assert.Empty(t, corrupt.Tests)
}

func TestLoadDetailsSkipsMalformedEntries(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	raw := `{"resources":[],"tests":[{"id":"t1","name":"Good","topics":[]},42,"junk"],"study_materials":[]}`
	require.NoError(t, os.WriteFile(store.detailsFile("Math"), []byte(raw), 0o644))

	details := store.LoadDetails("Math")
	require.Len(t, details.Tests, 1)
	assert.Equal(t, "Good", details.Tests[0].Name)
}

func TestRecordsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	log := models.NewRecordLog()
	log.Records = append(log.Records, &models.ProgressRecord{
		ID: "r1", TopicID: "top1", TopicName: "Algebra",
		ResourceID: "res1", ResourceName: "Practice Set",
		Date: "2026-09-01", Timestamp: "2026-09-01 10:00:00",
	})
	require.NoError(t, store.SaveRecords("Math", "t1", log))

	loaded := store.LoadRecords("Math", "t1")
	require.Len(t, loaded.Records, 1)
	assert.Equal(t, "Algebra", loaded.Records[0].TopicName)

	// Missing and corrupt logs decode to empty
	assert.Empty(t, store.LoadRecords("Math", "other").Records)
	require.NoError(t, os.WriteFile(store.progressFile("Math", "bad"), []byte("!!"), 0o644))
	assert.Empty(t, store.LoadRecords("Math", "bad").Records)

	require.NoError(t, store.DeleteRecords("Math", "t1"))
	assert.Empty(t, store.LoadRecords("Math", "t1").Records)
	// Deleting again is fine
	require.NoError(t, store.DeleteRecords("Math", "t1"))
}

func TestDeleteSubjectFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	require.NoError(t, store.SaveDetails("Math", models.NewSubjectDetails()))
	require.NoError(t, store.SaveRecords("Math", "t1", models.NewRecordLog()))
	require.NoError(t, store.SaveRecords("Math", "t2", models.NewRecordLog()))
	require.NoError(t, store.SaveRecords("Science", "t3", models.NewRecordLog()))

	require.NoError(t, store.DeleteSubjectFiles("Math"))

	_, err := os.Stat(store.detailsFile("Math"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(store.progressFile("Math", "t1"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(store.progressFile("Science", "t3"))
	assert.NoError(t, err)
}

func TestRenameSubjectFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	details := models.NewSubjectDetails()
	details.Tests = append(details.Tests, &models.Test{ID: "t1", Name: "Final"})
	require.NoError(t, store.SaveDetails("Old Name", details))

	log := models.NewRecordLog()
	log.Records = append(log.Records, &models.ProgressRecord{ID: "r1", ResourceID: "res1"})
	require.NoError(t, store.SaveRecords("Old Name", "t1", log))

	require.NoError(t, store.RenameSubjectFiles("Old Name", "New Name"))

	_, err := os.Stat(store.detailsFile("Old Name"))
	assert.True(t, os.IsNotExist(err))
	assert.Len(t, store.LoadDetails("New Name").Tests, 1)
	assert.Len(t, store.LoadRecords("New Name", "t1").Records, 1)
}

func TestSafeNameCollisionLastWriterWins(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureFileStructure())

	// "My Subject" and "My/Subject" share the file My_Subject.json
	first := models.NewSubjectDetails()
	first.Tests = append(first.Tests, &models.Test{ID: "a", Name: "From first"})
	require.NoError(t, store.SaveDetails("My Subject", first))

	second := models.NewSubjectDetails()
	second.Tests = append(second.Tests, &models.Test{ID: "b", Name: "From second"})
	require.NoError(t, store.SaveDetails("My/Subject", second))

	loaded := store.LoadDetails("My Subject")
	require.Len(t, loaded.Tests, 1)
	assert.Equal(t, "From second", loaded.Tests[0].Name)
}
