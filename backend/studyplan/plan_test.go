package studyplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTestValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddTest("Math", "", "2099-06-01")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddTest("Math", "Final", "  ")
	assert.ErrorIs(t, err, ErrValidation)

	test, err := svc.AddTest("Math", " Final ", "2099-06-01")
	require.NoError(t, err)
	assert.Equal(t, "Final", test.Name)
	assert.NotEmpty(t, test.ID)
	assert.NotNil(t, test.Topics)
}

func TestEditTestUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.EditTest("Math", "missing", "Renamed", "2099-06-02")
	assert.ErrorIs(t, err, ErrNotFound)

	test, err := svc.AddTest("Math", "Final", "2099-06-01")
	require.NoError(t, err)

	edited, err := svc.EditTest("Math", test.ID, "Renamed", "2099-06-02")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Name)
	assert.Equal(t, "2099-06-02", edited.Date)
}

func TestDeleteTestRemovesRecords(t *testing.T) {
	svc, _ := newTestService(t)

	test, err := svc.AddTest("Math", "Final", "2099-06-01")
	require.NoError(t, err)
	topic, err := svc.AddTopic("Math", test.ID, "Algebra")
	require.NoError(t, err)
	res, err := svc.AddResource("Math", test.ID, topic.ID, "Practice Set", 2)
	require.NoError(t, err)
	_, _, err = svc.AddRecord("Math", test.ID, topic.ID, res.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTest("Math", test.ID))
	assert.Empty(t, svc.Store.LoadDetails("Math").Tests)
	assert.Empty(t, svc.Store.LoadRecords("Math", test.ID).Records)

	// Deleting a gone id is not an error
	require.NoError(t, svc.DeleteTest("Math", test.ID))
}

func TestAddTopicDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)

	test, err := svc.AddTest("Math", "Final", "2099-06-01")
	require.NoError(t, err)

	_, err = svc.AddTopic("Math", test.ID, "Algebra")
	require.NoError(t, err)
	_, err = svc.AddTopic("Math", test.ID, "Algebra")
	assert.ErrorIs(t, err, ErrValidation)

	// Exact match only: case differs, so it goes through
	_, err = svc.AddTopic("Math", test.ID, "algebra")
	require.NoError(t, err)

	_, err = svc.AddTopic("Math", "missing", "Geometry")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditTopicKeepsRecordSnapshots(t *testing.T) {
	svc, _ := newTestService(t)

	test, err := svc.AddTest("Math", "Final", "2099-06-01")
	require.NoError(t, err)
	topic, err := svc.AddTopic("Math", test.ID, "Algebra")
	require.NoError(t, err)
	res, err := svc.AddResource("Math", test.ID, topic.ID, "Practice Set", 2)
	require.NoError(t, err)
	record, _, err := svc.AddRecord("Math", test.ID, topic.ID, res.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", record.TopicName)

	_, err = svc.EditTopic("Math", test.ID, topic.ID, "Linear Algebra")
	require.NoError(t, err)

	// The stored record keeps the name it was created under
	log := svc.Store.LoadRecords("Math", test.ID)
	require.Len(t, log.Records, 1)
	assert.Equal(t, "Algebra", log.Records[0].TopicName)
}

func TestDeleteTopic(t *testing.T) {
	svc, _ := newTestService(t)

	test, err := svc.AddTest("Math", "Final", "2099-06-01")
	require.NoError(t, err)
	topic, err := svc.AddTopic("Math", test.ID, "Algebra")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTopic("Math", test.ID, topic.ID))
	details := svc.Store.LoadDetails("Math")
	assert.Empty(t, details.Tests[0].Topics)

	assert.ErrorIs(t, svc.DeleteTopic("Math", "missing", topic.ID), ErrNotFound)
}

func TestResourceCountCoercion(t *testing.T) {
	svc, _ := newTestService(t)

	test, err := svc.AddTest("Math", "Final", "2099-06-01")
	require.NoError(t, err)
	topic, err := svc.AddTopic("Math", test.ID, "Algebra")
	require.NoError(t, err)

	res, err := svc.AddResource("Math", test.ID, topic.ID, "Worksheet", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	res, err = svc.EditResource("Math", test.ID, topic.ID, res.ID, "Worksheet", -5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	res, err = svc.EditResource("Math", test.ID, topic.ID, res.ID, "Worksheet", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Count)

	_, err = svc.EditResource("Math", test.ID, topic.ID, "missing", "Worksheet", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteResource(t *testing.T) {
	svc, _ := newTestService(t)

	test, err := svc.AddTest("Math", "Final", "2099-06-01")
	require.NoError(t, err)
	topic, err := svc.AddTopic("Math", test.ID, "Algebra")
	require.NoError(t, err)
	res, err := svc.AddResource("Math", test.ID, topic.ID, "Worksheet", 2)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteResource("Math", test.ID, topic.ID, res.ID))
	details := svc.Store.LoadDetails("Math")
	assert.Empty(t, details.Tests[0].Topics[0].Resources)
}
