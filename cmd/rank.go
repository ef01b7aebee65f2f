package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/linkrank/internal/rank"
)

var rankCmd = &cobra.Command{
	Use:   "rank [file...]",
	Short: "Rank the pages of one or more edge lists",
	Long: `Reads edge lists and prints every page with its rank, in byte-wise
label order.

Each input starts with a header "n p": the number of edge lines that follow
and the number of iterations. Each edge line is "from to"; a line with a
single label adds an isolated page. With no files, standard input is read.
Several files are ranked concurrently and printed in argument order.`,
	RunE: runRank,
}

func init() {
	addRankFlags(rankCmd)
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

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

	if len(args) == 0 {
		scores, err := s.rankSource(ctx, "stdin", cmd.InOrStdin())
		if err != nil {
			return err
		}
		return s.writeScores(cmd.OutOrStdout(), scores)
	}
	return rankFiles(ctx, s, cmd.OutOrStdout(), args)
}

// rankFiles ranks every path concurrently and writes the results in path
// order. With more than one path each result is preceded by a header line.
func rankFiles(ctx context.Context, s *session, w io.Writer, paths []string) error {
	results := make([][]rank.Score, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			scores, err := rankFile(ctx, s, path)
			if err != nil {
				return err
			}
			results[i] = scores
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", path)
		}
		if err := s.writeScores(w, results[i]); err != nil {
			return err
		}
	}
	return nil
}

func rankFile(ctx context.Context, s *session, path string) ([]rank.Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rank: open %s: %w", path, err)
	}
	defer f.Close()
	return s.rankSource(ctx, path, f)
}
