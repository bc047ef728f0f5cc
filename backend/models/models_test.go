package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenientListDecoding(t *testing.T) {
	raw := `{
		"resources": [],
		"tests": [
			{"id":"t1","name":"Good","topics":[{"id":"top1","name":"Topic","resources":[{"id":"r1","name":"Res","count":2},"junk"]}]},
			"not an object",
			17
		],
		"study_materials": []
	}`

	var details SubjectDetails
	require.NoError(t, json.Unmarshal([]byte(raw), &details))
	require.Len(t, details.Tests, 1)
	assert.Equal(t, "Good", details.Tests[0].Name)
	require.Len(t, details.Tests[0].Topics, 1)
	assert.Len(t, details.Tests[0].Topics[0].Resources, 1)
}

func TestListDecodingNonArray(t *testing.T) {
	var tests TestList
	require.NoError(t, json.Unmarshal([]byte(`"not a list"`), &tests))
	assert.Empty(t, tests)

	var records RecordList
	require.NoError(t, json.Unmarshal([]byte(`{"oops":1}`), &records))
	assert.Empty(t, records)
}

func TestTotalRequired(t *testing.T) {
	test := &Test{ID: "t", Topics: TopicList{
		{ID: "a", Resources: ResourceList{
			{ID: "r1", Count: 3},
			{ID: "r2", Count: 0},
			{ID: "r3", Count: -2},
		}},
		{ID: "b", Resources: ResourceList{
			{ID: "r4", Count: 1},
		}},
	}}

	// Counts below 1 are treated as 1
	assert.Equal(t, 6, test.TotalRequired())
}

func TestRecordListHelpers(t *testing.T) {
	s1, s2 := 80.0, 90.0
	log := RecordList{
		{ID: "a", ResourceID: "res1", Date: "2026-01-01", Score: &s1},
		{ID: "b", ResourceID: "res2", Date: "2026-01-01"},
		{ID: "c", ResourceID: "res1", Date: "2026-01-02", Score: &s2},
		{ID: "d", ResourceID: "res1", Date: "2026-01-02"},
	}

	assert.Equal(t, 3, log.CompletedFor("res1"))
	assert.Equal(t, 1, log.CompletedFor("res2"))
	assert.Equal(t, 0, log.CompletedFor("nope"))

	assert.Equal(t, []float64{80.0, 90.0}, log.ScoresFor("res1"))
	assert.Empty(t, log.ScoresFor("res2"))

	assert.Len(t, log.OnDate("2026-01-02"), 2)
	assert.Empty(t, log.OnDate("2026-01-03"))
}

func TestFindHelpers(t *testing.T) {
	res := &Resource{ID: "r1", Name: "Res"}
	topic := &Topic{ID: "top1", Name: "Topic", Resources: ResourceList{res}}
	test := &Test{ID: "t1", Name: "Test", Topics: TopicList{topic}}
	details := &SubjectDetails{Tests: TestList{test}}

	assert.Equal(t, test, details.FindTest("t1"))
	assert.Nil(t, details.FindTest("nope"))
	assert.Equal(t, topic, test.FindTopic("top1"))
	assert.Nil(t, test.FindTopic("nope"))
	assert.Equal(t, res, topic.FindResource("r1"))
	assert.Nil(t, topic.FindResource("nope"))
}
