// Package display renders reports and catalogs for the terminal or as
// machine-readable JSON and YAML.
package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/consentlens/errors"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.NewInvalidRequestError("unknown output format %q (want table, json or yaml)", s)
	}
}

// FormatFromCommand reads the --format flag, with --json as a shorthand.
func FormatFromCommand(cmd *cobra.Command) (Format, error) {
	if cmd == nil {
		return FormatTable, nil
	}
	if jsonFlag, err := cmd.Flags().GetBool("json"); err == nil && jsonFlag {
		return FormatJSON, nil
	}
	value, err := cmd.Flags().GetString("format")
	if err != nil {
		return FormatTable, nil
	}
	return ParseFormat(value)
}

// MarshalJSON marshals with indentation for human readers.
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to marshal JSON")
	}
	return buf.Bytes(), nil
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, v interface{}, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = MarshalJSON(v)
	case FormatYAML:
		data, err = yaml.Marshal(v)
		err = errors.Wrap(err, "failed to marshal YAML")
	default:
		return errors.NewInvalidRequestError("format %q is not a structured encoding", format)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}
