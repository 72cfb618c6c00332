// Package pairing aligns a session's gaze samples with the words on screen and
// writes the per-sample word distance table.
//
// Main Functions:
//
// - Pair: Processes one session and writes its CSV into the session directory
// - PairAll: Processes several sessions with bounded parallelism
// - Load: Builds the corpus and reads the in-window samples without writing
package pairing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gardar/gazepair/pkg/corpus"
	"github.com/gardar/gazepair/pkg/sensor"
	"github.com/gardar/gazepair/pkg/session"
)

// Result summarizes one paired session
type Result struct {
	Session    string
	OutputPath string
	Samples    int
	Documents  int
}

// Load builds the session's corpus and reads the gaze samples of its reading segment
func Load(sess *session.Session, cfg Config) (*corpus.Corpus, []sensor.Sample, error) {
	opts, err := cfg.corpusOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	c, err := corpus.New(sess, opts)
	if err != nil {
		return nil, nil, err
	}

	samples, err := sensor.ReadFile(sess.SensorDataPath, c.Segment.StartTime, c.Segment.EndTime)
	if err != nil {
		return nil, nil, fmt.Errorf("session %s: %w", sess.Name, err)
	}
	return c, samples, nil
}

// Pair processes one session: it writes <session dir>/<OutputFile>
func Pair(sess *session.Session, cfg Config) (*Result, error) {
	c, samples, err := Load(sess, cfg)
	if err != nil {
		return nil, err
	}

	out := filepath.Join(sess.Dir, cfg.OutputFile)
	if err := c.WriteFile(out, samples); err != nil {
		return nil, fmt.Errorf("session %s: %w", sess.Name, err)
	}

	slog.Info("paired session", "session", sess.Name, "documents", len(c.Documents),
		"samples", len(samples), "output", out)
	return &Result{
		Session:    sess.Name,
		OutputPath: out,
		Samples:    len(samples),
		Documents:  len(c.Documents),
	}, nil
}

// PairAll loads and pairs each named session under dataDir, at most jobs at a
// time. Results are returned in the order of names.
func PairAll(ctx context.Context, dataDir string, names []string, cfg Config, jobs int) ([]*Result, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]*Result, len(names))
	run := uuid.NewString()
	slog.Debug("pairing sessions", "run", run, "sessions", len(names), "jobs", jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sess, err := session.Load(dataDir, name)
			if err != nil {
				return err
			}
			res, err := Pair(sess, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("pairing failed", "run", run, "error", err)
		return nil, err
	}
	slog.Debug("paired sessions", "run", run, "sessions", len(results))
	return results, nil
}
