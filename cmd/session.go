package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/papapumpkin/linkrank/internal/config"
	"github.com/papapumpkin/linkrank/internal/edgelist"
	"github.com/papapumpkin/linkrank/internal/logging"
	"github.com/papapumpkin/linkrank/internal/metrics"
	"github.com/papapumpkin/linkrank/internal/output"
	"github.com/papapumpkin/linkrank/internal/rank"
	"github.com/papapumpkin/linkrank/internal/telemetry"
	"github.com/papapumpkin/linkrank/internal/tracing"
)

// addRankFlags registers the flags shared by rank and watch.
func addRankFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("iterations", "n", -1, "override the iteration count from the input header")
	cmd.Flags().String("variant", "", "rank variant: undamped or damped")
	cmd.Flags().Float64("damping", 0, "damping factor for the damped variant")
	cmd.Flags().StringP("format", "o", "", "output format: text, json, yaml, toml, table")
	cmd.Flags().Int("precision", 0, "decimals for text and table output (-1 for shortest)")
	cmd.Flags().String("events", "", "append JSONL telemetry events to this file")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile on exit")
	cmd.Flags().Bool("trace", false, "export OpenTelemetry spans to stderr")
}

// loadConfig loads the layered configuration and applies explicitly set
// flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	applyFlagOverrides(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyFlagOverrides applies CLI flag values to the loaded config. Only
// flags the user actually set take effect.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("iterations") {
		cfg.Iterations, _ = flags.GetInt("iterations")
	}
	if flags.Changed("variant") {
		cfg.Variant, _ = flags.GetString("variant")
	}
	if flags.Changed("damping") {
		cfg.Damping, _ = flags.GetFloat64("damping")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("precision") {
		cfg.Precision, _ = flags.GetInt("precision")
	}
	if flags.Changed("events") {
		cfg.EventsFile, _ = flags.GetString("events")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Changed("trace") {
		cfg.Trace, _ = flags.GetBool("trace")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.Verbose = true
	}
}

// session holds the collaborators of one CLI invocation. Sources ranked
// through a session may run concurrently.
type session struct {
	cfg      config.Config
	opts     rank.Options
	log      zerolog.Logger
	events   *telemetry.Emitter // nil when --events is unset
	recorder *metrics.Recorder  // nil when --metrics-file is unset
	shutdown func(context.Context) error
}

// newSession builds the logger, telemetry emitter, metrics recorder and
// tracer for cfg. Diagnostics go to diag; rank output never does.
func newSession(ctx context.Context, cfg config.Config, diag io.Writer) (*session, error) {
	opts, err := cfg.RankOptions()
	if err != nil {
		return nil, err
	}
	diag = zerolog.SyncWriter(diag)
	log, err := logging.New(diag, cfg.Logging())
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, opts: opts, log: log}

	if cfg.EventsFile != "" {
		s.events, err = telemetry.NewEmitter(cfg.EventsFile)
		if err != nil {
			return nil, err
		}
	}
	if cfg.MetricsFile != "" {
		s.recorder = metrics.NewRecorder()
	}

	var traceOut io.Writer
	if cfg.Trace {
		traceOut = diag
	}
	s.shutdown, err = tracing.Init(ctx, traceOut, version)
	if err != nil {
		_ = s.events.Close()
		return nil, err
	}
	return s, nil
}

// close flushes the metrics textfile, closes the event stream and shuts
// the tracer down. Every failure is reported.
func (s *session) close(ctx context.Context) error {
	var errs []error
	if s.recorder != nil {
		errs = append(errs, s.recorder.WriteTextfile(s.cfg.MetricsFile))
	}
	errs = append(errs, s.events.Close())
	if err := s.shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracing: shutdown: %w", err))
	}
	return errors.Join(errs...)
}

// rankSource parses one edge list and returns its scores in label order.
// source names the input in logs, events and metrics.
func (s *session) rankSource(ctx context.Context, source string, r io.Reader) ([]rank.Score, error) {
	_, span := tracing.Tracer().Start(ctx, "rank")
	defer span.End()
	span.SetAttributes(attribute.String("linkrank.source", source))

	in, err := edgelist.Read(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	iterations := in.Iterations
	if s.cfg.Iterations >= 0 {
		iterations = s.cfg.Iterations
	}
	span.SetAttributes(
		attribute.Int("linkrank.nodes", in.Graph.Len()),
		attribute.Int("linkrank.edges", in.Graph.EdgeCount()),
		attribute.Int("linkrank.iterations", iterations),
		attribute.String("linkrank.variant", string(s.opts.Variant)),
	)

	log := s.log.With().Str("source", source).Logger()
	observers := rank.Observers{logging.NewRankObserver(log)}
	var events *telemetry.RankObserver
	if s.events != nil {
		events = telemetry.NewRankObserver(s.events, source)
		observers = append(observers, events)
	}
	if s.recorder != nil {
		observers = append(observers, s.recorder.Track(source))
	}

	opts := s.opts
	opts.Observer = observers
	ranker, err := rank.NewRanker(in.Graph, opts)
	if err != nil {
		return nil, err
	}
	ranker.Run(iterations)

	if events != nil {
		if err := events.Err(); err != nil {
			log.Warn().Err(err).Str("run", events.RunID()).Msg("telemetry events dropped")
		}
	}

	scores := ranker.SortedRanks()
	log.Debug().
		Int("nodes", len(scores)).
		Int("iterations", iterations).
		Msg("ranked")
	return scores, nil
}

// writeScores renders scores in the configured format.
func (s *session) writeScores(w io.Writer, scores []rank.Score) error {
	return output.Write(w, s.cfg.OutputFormat(), scores, output.Options{Precision: s.cfg.Precision})
}
