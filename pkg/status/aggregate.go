package status

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"rulewatch/pkg/httperr"
	"rulewatch/pkg/model"
)

// FetchDepth is how many records are pulled per rule: the newest becomes the
// current status, the remaining five the visible failure history.
const FetchDepth = 6

// Fetcher returns up to n most-recent status records for a rule, ordered
// descending by timestamp.
type Fetcher func(ctx context.Context, ruleID string, n int) ([]model.StatusRecord, error)

// Aggregate fans out one fetch per requested rule ID and assembles the
// response mapping once all fetches resolve. Any single fetch failure fails
// the whole call; no partial response is returned.
func Aggregate(ctx context.Context, ids []string, fetch Fetcher) (model.StatusResponse, error) {
	resp := make(model.StatusResponse, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			records, err := fetch(gctx, id, FetchDepth)
			if err != nil {
				return httperr.Wrap(err, http.StatusInternalServerError)
			}
			mu.Lock()
			resp[id] = partition(records)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

// partition splits a descending record list into current (index 0) and
// failure history (the rest).
func partition(records []model.StatusRecord) model.RuleStatusResult {
	res := model.RuleStatusResult{Failures: []model.StatusRecord{}}
	if len(records) == 0 {
		return res
	}
	res.Current = &records[0]
	if len(records) > 1 {
		res.Failures = records[1:]
	}
	return res
}
