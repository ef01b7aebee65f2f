// Package edgelist reads whitespace-separated edge lists into a graph.
//
// The full input format starts with a header line "n p" giving the number
// of edge lines that follow and the power-iteration count. Each edge line is
// "from to", or just "from" to register a node without edges. Blank lines
// are skipped and do not count toward n; anything after the n-th edge line
// is ignored.
package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/papapumpkin/linkrank/internal/graph"
)

// ErrMalformedHeader is returned when the "n p" header is missing or invalid.
var ErrMalformedHeader = errors.New("malformed header")

// ErrMalformedLine is returned for an edge line with more than two tokens.
var ErrMalformedLine = errors.New("malformed edge line")

// ErrTruncated is returned when fewer edge lines are present than the
// header announced.
var ErrTruncated = errors.New("input truncated")

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Input is a parsed edge list.
type Input struct {
	Graph      *graph.Graph
	Iterations int // p from the header
	Lines      int // edge lines consumed
}

// Read parses a complete input (header plus edge lines) into a new graph.
func Read(r io.Reader) (*Input, error) {
	sc := newScanner(r)
	lineNo := 0

	var header []string
	for sc.Scan() {
		lineNo++
		header = strings.Fields(sc.Text())
		if len(header) > 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("edgelist: read header: %w", err)
	}
	n, p, err := parseHeader(header, lineNo)
	if err != nil {
		return nil, err
	}

	in := &Input{Graph: graph.New(), Iterations: p}
	for in.Lines < n && sc.Scan() {
		lineNo++
		added, err := apply(in.Graph, sc.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		if added {
			in.Lines++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("edgelist: read line %d: %w", lineNo+1, err)
	}
	if in.Lines < n {
		return nil, fmt.Errorf("%w: header announced %d edge lines, found %d", ErrTruncated, n, in.Lines)
	}
	return in, nil
}

// ReadEdges reads header-less edge lines until EOF and adds them to g. It
// returns the number of non-blank lines applied.
func ReadEdges(r io.Reader, g *graph.Graph) (int, error) {
	sc := newScanner(r)
	lineNo, count := 0, 0
	for sc.Scan() {
		lineNo++
		added, err := apply(g, sc.Text(), lineNo)
		if err != nil {
			return count, err
		}
		if added {
			count++
		}
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("edgelist: read line %d: %w", lineNo+1, err)
	}
	return count, nil
}

// ParseLine splits an edge line into its tokens. ok is false for blank
// lines; to is empty for single-token lines.
func ParseLine(line string) (from, to string, ok bool, err error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return "", "", false, nil
	case 1:
		return fields[0], "", true, nil
	case 2:
		return fields[0], fields[1], true, nil
	}
	return "", "", false, fmt.Errorf("%w: want \"from [to]\", got %d tokens", ErrMalformedLine, len(fields))
}

// apply adds one line to g, routing single-token lines to AddNode.
func apply(g *graph.Graph, line string, lineNo int) (bool, error) {
	from, to, ok, err := ParseLine(line)
	if err != nil {
		return false, fmt.Errorf("line %d: %w", lineNo, err)
	}
	if !ok {
		return false, nil
	}
	if to == "" {
		g.AddNode(from)
	} else {
		g.AddEdge(from, to)
	}
	return true, nil
}

func parseHeader(fields []string, lineNo int) (n, p int, err error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: line %d: want \"n p\", got %d tokens", ErrMalformedHeader, lineNo, len(fields))
	}
	n, err = strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, 0, fmt.Errorf("%w: line %d: edge count %q is not a non-negative integer", ErrMalformedHeader, lineNo, fields[0])
	}
	p, err = strconv.Atoi(fields[1])
	if err != nil || p < 0 {
		return 0, 0, fmt.Errorf("%w: line %d: iteration count %q is not a non-negative integer", ErrMalformedHeader, lineNo, fields[1])
	}
	return n, p, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return sc
}
