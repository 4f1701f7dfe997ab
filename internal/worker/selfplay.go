package worker

import (
	"context"

	"github.com/lgbarn/chess-state-go/internal/player"
	"github.com/lgbarn/chess-state-go/internal/processing"
)

// SelfPlay returns a ProcessFunc that plays each item out with two random
// choosers seeded from the item, so a batch is reproducible whatever the
// number of workers.
func SelfPlay(ctx context.Context, limits processing.Limits) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		white := player.NewRandom(item.Seed)
		black := player.NewRandom(item.Seed ^ 0x9E3779B97F4A7C15)

		out, err := processing.PlayOutWithLimits(ctx, item.State, white, black, nil, limits)
		if err != nil {
			return ProcessResult{Index: item.Index, Error: err}
		}
		return ProcessResult{Index: item.Index, Outcome: out, Record: out.Record()}
	}
}
