package telemetry

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/papapumpkin/linkrank/internal/rank"
)

// RunStartData is the payload of a run_start event.
type RunStartData struct {
	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	Iterations int `json:"iterations"`
}

// IterationData is the payload of an iteration event.
type IterationData struct {
	Iteration int     `json:"iteration"`
	Mass      float64 `json:"mass"`
	Max       float64 `json:"max"`
}

// RunDoneData is the payload of a run_done event.
type RunDoneData struct {
	Nodes      int     `json:"nodes"`
	Mass       float64 `json:"mass"`
	DurationMs int64   `json:"duration_ms"`
}

// RankObserver records one rank computation as telemetry events. Emit
// failures do not interrupt the computation; they are collected and
// reported by Err.
type RankObserver struct {
	em      *Emitter
	runID   string
	source  string
	now     func() time.Time
	started time.Time
	errs    []error
}

// NewRankObserver returns an observer tagging its events with a fresh run
// id and the given source (typically the input file name).
func NewRankObserver(em *Emitter, source string) *RankObserver {
	return &RankObserver{
		em:     em,
		runID:  uuid.NewString(),
		source: source,
		now:    time.Now,
	}
}

// RunID returns the id stamped on every event of this run.
func (o *RankObserver) RunID() string {
	return o.runID
}

// Err returns every emit error seen so far, joined.
func (o *RankObserver) Err() error {
	return errors.Join(o.errs...)
}

// ComputeStarted emits a run_start event and starts the run clock.
func (o *RankObserver) ComputeStarted(nodes, edges, iterations int) {
	o.started = o.now()
	o.emit(o.started, KindRunStart, RunStartData{Nodes: nodes, Edges: edges, Iterations: iterations})
}

// IterationDone emits an iteration event with the vector's mass and maximum.
func (o *RankObserver) IterationDone(iteration int, ranks rank.Vector) {
	var maxRank float64
	for _, v := range ranks {
		maxRank = max(maxRank, v)
	}
	o.emit(o.now(), KindIteration, IterationData{
		Iteration: iteration,
		Mass:      ranks.Sum(),
		Max:       maxRank,
	})
}

// ComputeFinished emits a run_done event carrying the run duration.
func (o *RankObserver) ComputeFinished(ranks rank.Vector) {
	ts := o.now()
	o.emit(ts, KindRunDone, RunDoneData{
		Nodes:      len(ranks),
		Mass:       ranks.Sum(),
		DurationMs: ts.Sub(o.started).Milliseconds(),
	})
}

func (o *RankObserver) emit(ts time.Time, kind string, data any) {
	err := o.em.Emit(Event{
		Timestamp: ts,
		Kind:      kind,
		RunID:     o.runID,
		Source:    o.source,
		Data:      data,
	})
	if err != nil {
		o.errs = append(o.errs, err)
	}
}
