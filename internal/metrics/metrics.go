// Package metrics exposes Prometheus collectors for rank computations.
// A CLI run has no scrape endpoint, so the registry is written to a
// node_exporter textfile when the run completes.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/papapumpkin/linkrank/internal/rank"
)

// Recorder owns a private registry and the collectors registered on it.
// It is safe for concurrent use; each computation gets its own observer
// from Track.
type Recorder struct {
	reg *prometheus.Registry

	// RunsTotal counts completed rank computations.
	RunsTotal prometheus.Counter
	// IterationsTotal counts power iterations across all runs.
	IterationsTotal prometheus.Counter
	// Nodes records the node count of each run, labeled by source.
	Nodes *prometheus.GaugeVec
	// Edges records the edge count of each run, labeled by source.
	Edges *prometheus.GaugeVec
	// Mass records the final total rank mass, labeled by source. Below 1
	// means dangling nodes leaked mass.
	Mass *prometheus.GaugeVec
	// ComputeDuration observes wall time per computation.
	ComputeDuration prometheus.Histogram
}

// NewRecorder registers the linkrank collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		RunsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "linkrank_runs_total",
			Help: "Total number of completed rank computations",
		}),
		IterationsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "linkrank_iterations_total",
			Help: "Total number of power iterations performed",
		}),
		Nodes: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "linkrank_graph_nodes",
			Help: "Number of nodes in the ranked graph",
		}, []string{"source"}),
		Edges: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "linkrank_graph_edges",
			Help: "Number of edges in the ranked graph, duplicates included",
		}, []string{"source"}),
		Mass: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "linkrank_rank_mass",
			Help: "Total rank mass after the final iteration",
		}, []string{"source"}),
		ComputeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "linkrank_compute_duration_seconds",
			Help:    "Wall time of a rank computation",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteTextfile writes the current metric values to path in the text
// exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}

// Track returns an observer that records one computation for source.
func (r *Recorder) Track(source string) rank.Observer {
	return &runObserver{rec: r, source: source, now: time.Now}
}

type runObserver struct {
	rec     *Recorder
	source  string
	now     func() time.Time
	started time.Time
}

func (o *runObserver) ComputeStarted(nodes, edges, _ int) {
	o.started = o.now()
	o.rec.Nodes.WithLabelValues(o.source).Set(float64(nodes))
	o.rec.Edges.WithLabelValues(o.source).Set(float64(edges))
}

func (o *runObserver) IterationDone(int, rank.Vector) {
	o.rec.IterationsTotal.Inc()
}

func (o *runObserver) ComputeFinished(ranks rank.Vector) {
	o.rec.ComputeDuration.Observe(o.now().Sub(o.started).Seconds())
	o.rec.Mass.WithLabelValues(o.source).Set(ranks.Sum())
	o.rec.RunsTotal.Inc()
}
