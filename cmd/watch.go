package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-rank an edge list whenever it changes",
	Long: `Ranks the file once, then again after every change until interrupted.
A file that fails to parse is reported and skipped; the next save is ranked
as usual.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addRankFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a change is ranked")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")

	ctx := cmd.Context()
	s, err := newSession(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return watchFile(ctx, s, cmd.OutOrStdout(), args[0], debounce)
}

// watchFile ranks path once and then on every debounced change until ctx
// is canceled. Only a failure to start watching is returned.
func watchFile(ctx context.Context, s *session, w io.Writer, path string, debounce time.Duration) error {
	watcher, err := watch.New(path, debounce)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	rerank := func() {
		scores, err := rankFile(ctx, s, path)
		if err != nil {
			s.log.Error().Err(err).Msg("rank failed")
			return
		}
		fmt.Fprintf(w, "==> %s (%s) <==\n", path, time.Now().Format(time.TimeOnly))
		if err := s.writeScores(w, scores); err != nil {
			s.log.Error().Err(err).Msg("write failed")
		}
	}

	rerank()
	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Msg("watch stopped")
			return nil
		case _, ok := <-watcher.Changes:
			if !ok {
				return nil
			}
			s.log.Debug().Str("source", path).Msg("change detected")
			rerank()
		}
	}
}
