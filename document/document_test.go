package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/consentlens/errors"
)

func TestParseDocType(t *testing.T) {
	tests := []struct {
		in      string
		want    DocType
		wantErr bool
	}{
		{"email", DocTypeEmail, false},
		{"  CV ", DocTypeCV, false},
		{"Notes", DocTypeNotes, false},
		{"transcript", DocTypeTranscript, false},
		{"other", DocTypeOther, false},
		{"invoice", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDocType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidRequestError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDocTypes_FailsOnFirstInvalid(t *testing.T) {
	_, err := ParseDocTypes([]string{"email", "fax", "notes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"fax"`)

	types, err := ParseDocTypes([]string{"email", "notes"})
	require.NoError(t, err)
	assert.Equal(t, []DocType{DocTypeEmail, DocTypeNotes}, types)
}

func TestAllDocTypesAreValid(t *testing.T) {
	all := AllDocTypes()
	assert.Len(t, all, 5)
	for _, dt := range all {
		assert.True(t, dt.Valid(), dt)
	}
	assert.False(t, DocType("memo").Valid())
}

func TestSummarize_Preview(t *testing.T) {
	doc := Document{ID: "d1", Type: DocTypeNotes, SourceFile: "notes.txt", CleanText: "Zürich notes"}

	assert.Equal(t, "Zürich notes", doc.Summarize(320).Preview)
	assert.Equal(t, "Zür…", doc.Summarize(3).Preview)
	assert.Equal(t, "…", doc.Summarize(0).Preview)

	long := Document{CleanText: strings.Repeat("a", 400)}
	p := long.Summarize(320).Preview
	assert.True(t, strings.HasSuffix(p, "…"))
	assert.Equal(t, 321, len([]rune(p)))
}
