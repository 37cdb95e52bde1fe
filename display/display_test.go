package display

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/explanation"
	"github.com/teranos/consentlens/inference"
)

func init() {
	pterm.DisableStyling()
}

func sampleReport() *analysis.Report {
	region := "New England"
	return &analysis.Report{
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Scenarios: []analysis.ScenarioResult{
			{
				Name:          "emails_only",
				DocTypes:      []document.DocType{document.DocTypeEmail},
				DocumentCount: 1,
				Attributes: []analysis.AttributeExplanation{
					{Name: "field_of_study", TopFeatures: []string{}, SupportingSentences: []explanation.SupportingSentence{}},
					{
						Name:           "location_region",
						PredictedValue: &region,
						Confidence:     0.947,
						TopFeatures:    []string{"boston", "mbta"},
						SupportingSentences: []explanation.SupportingSentence{
							{DocID: "e1", DocType: document.DocTypeEmail, Text: "I took the MBTA from Boston."},
						},
						Available: true,
					},
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "TABLE": FormatTable, "json": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatFromCommand(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("format", "table", "")
	cmd.Flags().Bool("json", false, "")

	f, err := FormatFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	require.NoError(t, cmd.Flags().Set("format", "yaml"))
	f, err = FormatFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	require.NoError(t, cmd.Flags().Set("json", "true"))
	f, err = FormatFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
}

func TestReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "emails_only (1 documents: email)")
	assert.Contains(t, out, "New England")
	assert.Contains(t, out, "94.7%")
	assert.Contains(t, out, "boston, mbta")
	assert.Contains(t, out, unavailableValue)
	assert.Contains(t, out, `"I took the MBTA from Boston."`)
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	scenarios := decoded["scenarios"].([]interface{})
	attrs := scenarios[0].(map[string]interface{})["attributes"].([]interface{})
	unavailable := attrs[0].(map[string]interface{})
	assert.Nil(t, unavailable["predicted_value"])
	assert.Equal(t, false, unavailable["available"])
	assert.Equal(t, []interface{}{}, unavailable["top_features"])
}

func TestReportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), FormatYAML))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "generated_at")
	assert.Contains(t, buf.String(), "supporting_sentences")
}

func TestDocumentsTable(t *testing.T) {
	catalog := Catalog{
		DocumentCount: 2,
		Counts:        map[document.DocType]int{document.DocTypeNotes: 1, document.DocTypeEmail: 1},
		Documents: []document.Summary{
			{ID: "abc", Type: document.DocTypeEmail, SourceFile: "/d/mail.txt", Preview: "Hello\n\nBoston"},
			{ID: "def", Type: document.DocTypeNotes, SourceFile: "/d/notes.md", Preview: "Notes"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Documents(&buf, catalog, FormatTable))

	assert.Contains(t, buf.String(), "Hello Boston")
	assert.Contains(t, buf.String(), "2 documents (email=1 notes=1)")
}

func TestModels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Models(&buf, ModelList{Dir: "/m"}, FormatTable))
	assert.Contains(t, buf.String(), "No models loaded from /m")

	buf.Reset()
	list := ModelList{Dir: "/m", Ready: true, Models: []inference.ModelInfo{
		{Name: "location_region", Classes: []string{"Bay Area", "New England"}, VocabularySize: 9},
	}}
	require.NoError(t, Models(&buf, list, FormatTable))
	assert.Contains(t, buf.String(), "Bay Area, New England")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("a\n b\t\tc", 10))
	assert.Equal(t, "abc…", oneLine("abcdef", 3))
}
