// Package logging builds the zerolog logger used across linkrank and adapts
// it to the rank observer hook.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/papapumpkin/linkrank/internal/rank"
)

// ErrUnknownLevel is returned for an unrecognized log level name.
var ErrUnknownLevel = errors.New("unknown log level")

// Config selects the logger output.
type Config struct {
	Level string // debug, info, warn, error; empty means info
	JSON  bool   // JSON lines instead of the console writer
}

// New returns a logger writing to w.
func New(w io.Writer, cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if !cfg.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// RankObserver logs rank progress at debug level.
type RankObserver struct {
	log zerolog.Logger
}

// NewRankObserver returns an observer logging through log.
func NewRankObserver(log zerolog.Logger) *RankObserver {
	return &RankObserver{log: log}
}

// ComputeStarted logs the graph size and iteration count.
func (o *RankObserver) ComputeStarted(nodes, edges, iterations int) {
	o.log.Debug().
		Int("nodes", nodes).
		Int("edges", edges).
		Int("iterations", iterations).
		Msg("rank computation started")
}

// IterationDone logs the iteration number and total mass.
func (o *RankObserver) IterationDone(iteration int, ranks rank.Vector) {
	o.log.Debug().
		Int("iteration", iteration).
		Float64("mass", ranks.Sum()).
		Msg("iteration done")
}

// ComputeFinished logs the final node count and mass.
func (o *RankObserver) ComputeFinished(ranks rank.Vector) {
	o.log.Debug().
		Int("nodes", len(ranks)).
		Float64("mass", ranks.Sum()).
		Msg("rank computation finished")
}
