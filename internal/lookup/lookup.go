// Package lookup runs queries against a forbidden-domain matcher and renders
// the verdicts.
package lookup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/p4th0r/domaincheck/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Verdict tokens written for each query.
const (
	VerdictBad  = "Bad"
	VerdictGood = "Good"
)

// minChunk keeps goroutine overhead below the cost of the lookups it runs.
const minChunk = 256

// Result is the outcome of a single query.
type Result struct {
	Index     int           // position in the query list
	Query     string        // query as provided
	Domain    domain.Domain // canonical form of Query
	Forbidden bool
	Root      domain.Domain // forbidden root that matched (zero if allowed)
	Duration  time.Duration // time spent in the matcher
}

// Verdict returns "Bad" for forbidden queries and "Good" otherwise.
func (r Result) Verdict() string {
	if r.Forbidden {
		return VerdictBad
	}
	return VerdictGood
}

// Options controls Run.
type Options struct {
	// Workers is the maximum number of goroutines; values below 1 mean 1.
	Workers int
	// Observe, if set, is called once per result. With more than one worker
	// it is called concurrently and must be safe for that.
	Observe func(Result)
}

// Run evaluates every query against m and returns the results in query
// order. Queries are split into contiguous chunks, one goroutine per chunk.
// Run stops early and returns the context error if ctx is cancelled.
func Run(ctx context.Context, m domain.Matcher, queries []string, opts Options) ([]Result, error) {
	results := make([]Result, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	workers := max(opts.Workers, 1)
	chunk := max((len(queries)+workers-1)/workers, minChunk)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(queries); start += chunk {
		end := min(start+chunk, len(queries))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = evaluate(m, i, queries[i])
				if opts.Observe != nil {
					opts.Observe(results[i])
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating queries: %w", err)
	}
	return results, nil
}

func evaluate(m domain.Matcher, i int, query string) Result {
	d := domain.New(query)
	start := time.Now()
	root, ok := m.Match(d)
	return Result{
		Index:     i,
		Query:     query,
		Domain:    d,
		Forbidden: ok,
		Root:      root,
		Duration:  time.Since(start),
	}
}

// WriteVerdicts writes one verdict per line, in result order.
func WriteVerdicts(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintln(bw, r.Verdict()); err != nil {
			return fmt.Errorf("writing verdict: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing verdicts: %w", err)
	}
	return nil
}

// WriteLabelled writes "<query> <verdict>" per line, in result order.
func WriteLabelled(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%s %s\n", r.Query, r.Verdict()); err != nil {
			return fmt.Errorf("writing verdict: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing verdicts: %w", err)
	}
	return nil
}
