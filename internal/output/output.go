// Package output renders sorted rank scores in the formats the CLI offers.
// Writers receive scores already in label order and never reorder them.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/linkrank/internal/rank"
)

// ErrUnknownFormat is returned for an unrecognized format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output encoding.
type Format string

const (
	FormatText  Format = "text"  // "label score" lines, fixed decimals
	FormatJSON  Format = "json"  // array of {label, rank}
	FormatYAML  Format = "yaml"  // sequence of {label, rank}
	FormatTOML  Format = "toml"  // [[ranks]] array of tables
	FormatTable Format = "table" // bordered terminal table
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatTable}
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options tunes human-oriented formats.
type Options struct {
	// Precision is the number of decimals used by the text and table
	// formats. Structured formats always carry full precision.
	Precision int
}

// DefaultOptions returns two-decimal precision.
func DefaultOptions() Options {
	return Options{Precision: 2}
}

// Write renders scores to w in format f.
func Write(w io.Writer, f Format, scores []rank.Score, opts Options) error {
	var err error
	switch f {
	case FormatText:
		err = writeText(w, scores, opts)
	case FormatJSON:
		err = writeJSON(w, scores)
	case FormatYAML:
		err = writeYAML(w, scores)
	case FormatTOML:
		err = writeTOML(w, scores)
	case FormatTable:
		err = writeTable(w, scores, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("output: write %s: %w", f, err)
	}
	return nil
}

func writeText(w io.Writer, scores []rank.Score, opts Options) error {
	for _, s := range scores {
		if _, err := fmt.Fprintf(w, "%s %s\n", s.Label, formatRank(s.Rank, opts)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, scores []rank.Score) error {
	if scores == nil {
		scores = []rank.Score{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scores)
}

func writeYAML(w io.Writer, scores []rank.Score) error {
	if scores == nil {
		scores = []rank.Score{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scores); err != nil {
		return err
	}
	return enc.Close()
}

// tomlDocument wraps the scores because TOML requires a top-level table.
type tomlDocument struct {
	Ranks []rank.Score `toml:"ranks"`
}

func writeTOML(w io.Writer, scores []rank.Score) error {
	return toml.NewEncoder(w).Encode(tomlDocument{Ranks: scores})
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	rankStyle   = cellStyle.Align(lipgloss.Right)
)

func writeTable(w io.Writer, scores []rank.Score, opts Options) error {
	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{s.Label, formatRank(s.Rank, opts)}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PAGE", "RANK").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return rankStyle
			default:
				return cellStyle
			}
		})
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func formatRank(v float64, opts Options) string {
	prec := opts.Precision
	if prec < 0 {
		prec = -1 // shortest exact representation
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
