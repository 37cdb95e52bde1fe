package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocs() []Document {
	return []Document{
		{ID: "a", Type: DocTypeEmail, CleanText: "hello from the office"},
		{ID: "b", Type: DocTypeNotes, CleanText: "grocery list"},
		{ID: "c", Type: DocTypeEmail, CleanText: "meeting moved"},
		{ID: "d", Type: DocTypeCV, CleanText: "experience"},
	}
}

func TestStore_ReplaceAllAndOrder(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(sampleDocs())

	require.Equal(t, 4, s.Len())
	ids := make([]string, 0, 4)
	for _, d := range s.All() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)

	s.ReplaceAll([]Document{{ID: "z", Type: DocTypeOther}})
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestStore_AddReplacesWithoutReordering(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(sampleDocs())
	s.Add(Document{ID: "b", Type: DocTypeTranscript, CleanText: "updated"})
	s.Add(Document{ID: "e", Type: DocTypeOther})

	all := s.All()
	require.Len(t, all, 5)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, DocTypeTranscript, all[1].Type)
	assert.Equal(t, "e", all[4].ID)
}

func TestStore_FilterAndCounts(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(sampleDocs())

	emails := s.FilterByTypes([]DocType{DocTypeEmail})
	require.Len(t, emails, 2)
	assert.Equal(t, "a", emails[0].ID)
	assert.Equal(t, "c", emails[1].ID)

	assert.Empty(t, s.FilterByTypes(nil))
	assert.Empty(t, s.FilterByTypes([]DocType{DocTypeTranscript}))

	counts := s.CountsByType()
	assert.Equal(t, 2, counts[DocTypeEmail])
	assert.Equal(t, 1, counts[DocTypeNotes])
	assert.Equal(t, 1, counts[DocTypeCV])
	assert.Zero(t, counts[DocTypeOther])
}

func TestStore_Summaries(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(sampleDocs())

	summaries := s.Summaries(5)
	require.Len(t, summaries, 4)
	assert.Equal(t, "hello…", summaries[0].Preview)
	assert.Equal(t, "d", summaries[3].ID)
}
