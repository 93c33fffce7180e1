// Package search orchestrates a query across session transcripts: discover
// files, scan them concurrently, excerpt every matching message, then
// enforce the caller's token budget over the ordered results.
package search

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nextlevelbuilder/sessgrep/internal/excerpt"
	"github.com/nextlevelbuilder/sessgrep/internal/match"
	"github.com/nextlevelbuilder/sessgrep/internal/sessions"
)

// scanConcurrency bounds parallel session file parsing. The excerpting core
// is pure, so disjoint documents are safe to process concurrently.
const scanConcurrency = 8

// Query describes one search. Zero values fall back to the package
// defaults; MaxLength and MaxTokens treat 0 as unlimited.
type Query struct {
	Pattern    string
	Literal    bool
	IgnoreCase bool

	Project string
	Role    string
	Since   time.Time
	Until   time.Time

	Radius     int
	MaxLength  int
	MaxResults int
	MaxTokens  int

	// PreciseTokens switches the budget enforcer from the chars/4 heuristic
	// to exact BPE counting.
	PreciseTokens bool
	Tokenizer     string
}

// DefaultMaxResults caps a search when the query does not say otherwise.
const DefaultMaxResults = 20

// Engine runs queries against one projects directory.
type Engine struct {
	mgr *sessions.Manager
	log *slog.Logger
}

func NewEngine(mgr *sessions.Manager, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{mgr: mgr, log: logger}
}

// Search scans every matching session and returns excerpted, budget-limited
// results ordered most recent first.
func (e *Engine) Search(ctx context.Context, q Query) (*Response, error) {
	matcher, err := match.Compile(q.Pattern, match.Options{
		Literal:    q.Literal,
		IgnoreCase: q.IgnoreCase,
	})
	if err != nil {
		return nil, err
	}
	if q.Radius <= 0 {
		q.Radius = excerpt.DefaultRadius
	}
	if q.MaxResults <= 0 {
		q.MaxResults = DefaultMaxResults
	}

	files := e.mgr.Files()

	var (
		mu       sync.Mutex
		results  []Result
		messages int
		scanned  int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)
	for _, file := range files {
		if q.Project != "" && file.Project != q.Project {
			continue
		}
		// Cheap prefilter: a file older than the window start cannot
		// contain messages inside it.
		if !q.Since.IsZero() && file.Modified.Before(q.Since) {
			continue
		}

		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			session, err := e.mgr.Load(file)
			if err != nil {
				e.log.Debug("skipping unreadable session", "path", file.Path, "error", err)
				return nil
			}
			found, n := e.scanSession(session, matcher, q)
			mu.Lock()
			results = append(results, found...)
			messages += n
			scanned++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Recency-first ordering; ties and zero timestamps fall back to path
	// order so output stays deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].Timestamp.Equal(results[j].Timestamp) {
			return results[i].Timestamp.After(results[j].Timestamp)
		}
		return results[i].Path < results[j].Path
	})
	if len(results) > q.MaxResults {
		results = results[:q.MaxResults]
	}

	outcome := excerpt.EnforceBudget(results, func(r Result) string { return r.Text }, q.MaxTokens, e.estimator(q))

	e.log.Debug("search complete",
		"pattern", q.Pattern,
		"sessions", scanned,
		"messages", messages,
		"results", len(outcome.Admitted),
		"tokens", outcome.EstimatedTokens,
		"budgetExceeded", outcome.BudgetExceeded,
	)

	return &Response{
		Results:         outcome.Admitted,
		BudgetExceeded:  outcome.BudgetExceeded,
		EstimatedTokens: outcome.EstimatedTokens,
		SessionsScanned: scanned,
		MessagesScanned: messages,
	}, nil
}

// scanSession matches and excerpts every eligible message in one session.
func (e *Engine) scanSession(s *sessions.Session, matcher *match.Matcher, q Query) ([]Result, int) {
	var out []Result
	scanned := 0
	for _, msg := range s.Messages {
		if q.Role != "" && msg.Role != q.Role {
			continue
		}
		if !q.Since.IsZero() && !msg.Timestamp.IsZero() && msg.Timestamp.Before(q.Since) {
			continue
		}
		if !q.Until.IsZero() && !msg.Timestamp.IsZero() && msg.Timestamp.After(q.Until) {
			continue
		}
		scanned++

		ranges := matcher.Find(msg.Content)
		if len(ranges) == 0 {
			continue
		}
		ex := capLength(excerpt.AroundAll(msg.Content, ranges, q.Radius), q.MaxLength)
		out = append(out, Result{
			SessionID:      s.ID,
			Project:        s.Project,
			Role:           msg.Role,
			Timestamp:      msg.Timestamp,
			Path:           s.Path,
			Text:           ex.Text,
			Meta:           ex.Meta,
			MatchPositions: ex.MatchPositions,
		})
	}
	return out, scanned
}

// capLength applies the per-result length cap on top of an excerpt. Match
// positions past the cut no longer point at text, so they are dropped.
func capLength(ex excerpt.Result, maxLength int) excerpt.Result {
	if maxLength <= 0 || len(ex.Text) <= maxLength {
		return ex
	}
	limited := excerpt.Limit(ex.Text, maxLength)
	cut := limited.Meta.SnippetEnd
	ex.Text = limited.Text
	ex.Meta.ContentTruncated = true
	ex.Meta.TruncationType = excerpt.TruncationLength

	var kept []excerpt.Range
	for _, p := range ex.MatchPositions {
		if p.End <= cut {
			kept = append(kept, p)
		}
	}
	ex.MatchPositions = kept
	return ex
}

// estimator picks the token estimator for a query, falling back to the
// heuristic when tokenizer data is unavailable.
func (e *Engine) estimator(q Query) excerpt.Estimator {
	if !q.PreciseTokens {
		return excerpt.HeuristicEstimator{}
	}
	est, err := excerpt.NewTiktokenEstimator(q.Tokenizer)
	if err != nil {
		e.log.Warn("precise token counting unavailable, using heuristic", "error", err)
		return excerpt.HeuristicEstimator{}
	}
	return est
}
