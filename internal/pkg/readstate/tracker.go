// Package readstate implements the unread -> read lifecycle shared by
// notifications and contact messages.
package readstate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Store flips a single item to read. Implementations must treat an item that
// is already read as success and return a not-found error for unknown ids.
type Store interface {
	MarkRead(ctx context.Context, id int64) error
}

// Failure describes one item that could not be marked read.
type Failure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// Result of a batch. Failed is never nil so it encodes as [].
type Result struct {
	Requested int       `json:"requested"`
	Updated   int       `json:"updated"`
	Failed    []Failure `json:"failed"`
}

type Tracker struct {
	store       Store
	concurrency int
}

func New(store Store, concurrency int) *Tracker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Tracker{store: store, concurrency: concurrency}
}

func (t *Tracker) MarkRead(ctx context.Context, id int64) error {
	return t.store.MarkRead(ctx, id)
}

// MarkAll issues one update per id concurrently and waits for all of them.
// A failed item does not stop the others and nothing is rolled back; every
// failure is reported in input order.
func (t *Tracker) MarkAll(ctx context.Context, ids []int64) Result {
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(t.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			errs[i] = t.store.MarkRead(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Requested: len(ids), Failed: []Failure{}}
	for i, err := range errs {
		if err != nil {
			res.Failed = append(res.Failed, Failure{ID: ids[i], Error: err.Error()})
			continue
		}
		res.Updated++
	}
	return res
}
