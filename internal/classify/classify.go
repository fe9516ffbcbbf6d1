// Package classify assigns categories to transactions from a rule set.
package classify

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/rules"
)

// Classify returns the category description resolves to under rs and policy.
// The result is always a declared category or model.CategoryOther.
func Classify(description string, rs *rules.RuleSet, policy rules.Policy) string {
	if rs == nil {
		return model.CategoryOther
	}
	if policy == rules.FirstMatch {
		return firstMatch(description, rs)
	}
	return bestScore(description, rs)
}

func firstMatch(description string, rs *rules.RuleSet) string {
	for i := 0; i < rs.Len(); i++ {
		c := rs.Category(i)
		for _, re := range c.Patterns {
			if re.MatchString(description) {
				return c.Name
			}
		}
	}
	return model.CategoryOther
}

func bestScore(description string, rs *rules.RuleSet) string {
	best, top := model.CategoryOther, 0
	for i := 0; i < rs.Len(); i++ {
		c := rs.Category(i)
		score := 0
		for _, re := range c.Patterns {
			if re.MatchString(description) {
				score++
			}
		}
		// Strictly greater: the earliest declared category keeps a tie.
		if score > top {
			best, top = c.Name, score
		}
	}
	return best
}

// Options controls batch classification.
type Options struct {
	// Policy overrides the rule set's own policy when non-empty.
	Policy rules.Policy
	// Workers is the number of goroutines; <= 1 classifies serially.
	Workers int
}

// minChunk is the smallest slice handed to one worker.
const minChunk = 256

// All returns a copy of txns with every Category set. Input is not modified.
// Output is identical for any Workers value.
func All(ctx context.Context, txns []model.Transaction, rs *rules.RuleSet, opts Options) ([]model.Transaction, error) {
	policy := opts.Policy
	if policy == "" && rs != nil {
		policy = rs.Policy()
	}

	out := make([]model.Transaction, len(txns))
	if opts.Workers <= 1 || len(txns) <= minChunk {
		for i, txn := range txns {
			out[i] = txn.WithCategory(Classify(txn.Description, rs, policy))
		}
		return out, nil
	}

	chunk := (len(txns) + opts.Workers - 1) / opts.Workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for start := 0; start < len(txns); start += chunk {
		start := start
		end := min(start+chunk, len(txns))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out[i] = txns[i].WithCategory(Classify(txns[i].Description, rs, policy))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
