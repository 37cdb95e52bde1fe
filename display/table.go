package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/inference"
	"github.com/teranos/consentlens/internal/util"
)

const unavailableValue = "n/a"

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Report writes report in the requested format.
func Report(w io.Writer, report *analysis.Report, format Format) error {
	if format != FormatTable {
		return Encode(w, report, format)
	}

	fmt.Fprintf(w, "Generated %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	for _, s := range report.Scenarios {
		fmt.Fprintf(w, "\n%s (%d documents: %s)\n", s.Name, s.DocumentCount, joinTypes(s.DocTypes))

		data := pterm.TableData{{"Attribute", "Prediction", "Confidence", "Top features", "Evidence"}}
		for _, a := range s.Attributes {
			data = append(data, attributeRow(a))
		}
		if err := renderTable(w, data); err != nil {
			return err
		}

		for _, a := range s.Attributes {
			for _, sent := range a.SupportingSentences {
				fmt.Fprintf(w, "  %s ← [%s] %q\n", a.Name, sent.DocType, sent.Text)
			}
		}
	}
	return nil
}

func attributeRow(a analysis.AttributeExplanation) []string {
	if !a.Available || a.PredictedValue == nil {
		return []string{a.Name, unavailableValue, "-", "-", "0"}
	}
	return []string{
		a.Name,
		*a.PredictedValue,
		strconv.FormatFloat(a.Confidence*100, 'f', 1, 64) + "%",
		strings.Join(a.TopFeatures, ", "),
		strconv.Itoa(len(a.SupportingSentences)),
	}
}

func joinTypes(types []document.DocType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Catalog is the ingestion overview printed by the documents command.
type Catalog struct {
	DocumentCount int                      `json:"document_count" yaml:"document_count"`
	Counts        map[document.DocType]int `json:"doc_type_counts" yaml:"doc_type_counts"`
	Documents     []document.Summary       `json:"documents" yaml:"documents"`
}

// Documents writes a catalog in the requested format.
func Documents(w io.Writer, catalog Catalog, format Format) error {
	if format != FormatTable {
		return Encode(w, catalog, format)
	}

	data := pterm.TableData{{"ID", "Type", "Source", "Preview"}}
	for _, d := range catalog.Documents {
		data = append(data, []string{d.ID, string(d.Type), d.SourceFile, oneLine(d.Preview, 60)})
	}
	if err := renderTable(w, data); err != nil {
		return err
	}

	types := make([]string, 0, len(catalog.Counts))
	for t := range catalog.Counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	counts := make([]string, len(types))
	for i, t := range types {
		counts[i] = fmt.Sprintf("%s=%d", t, catalog.Counts[document.DocType(t)])
	}
	_, err := fmt.Fprintf(w, "%d documents (%s)\n", catalog.DocumentCount, strings.Join(counts, " "))
	return err
}

// Document writes a single document with its raw and clean text.
func Document(w io.Writer, doc document.Document, format Format) error {
	if format != FormatTable {
		return Encode(w, doc, format)
	}
	fmt.Fprintf(w, "%s  %s  %s\n\n", doc.ID, doc.Type, doc.SourceFile)
	_, err := fmt.Fprintln(w, doc.CleanText)
	return err
}

// ModelList is the output of the models command.
type ModelList struct {
	Dir    string                `json:"dir" yaml:"dir"`
	Ready  bool                  `json:"ready" yaml:"ready"`
	Models []inference.ModelInfo `json:"models" yaml:"models"`
}

// Models writes the loaded models in the requested format.
func Models(w io.Writer, list ModelList, format Format) error {
	if format != FormatTable {
		return Encode(w, list, format)
	}
	if !list.Ready {
		_, err := fmt.Fprintf(w, "No models loaded from %s\n", list.Dir)
		return err
	}

	data := pterm.TableData{{"Attribute", "Classes", "Vocabulary", "Source"}}
	for _, m := range list.Models {
		data = append(data, []string{m.Name, strings.Join(m.Classes, ", "), strconv.Itoa(m.VocabularySize), m.Source})
	}
	return renderTable(w, data)
}

// oneLine flattens whitespace and truncates to n runes.
func oneLine(s string, n int) string {
	return util.Truncate(strings.Join(strings.Fields(s), " "), n)
}
