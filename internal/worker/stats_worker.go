package worker

import (
	"context"
	"log"

	"github.com/google/uuid"

	"launchboard/internal/metrics"
)

type VoteEvent struct {
	ProductID uuid.UUID
	UserID    int64
	Direction string
}

// StatsWorker drains vote events off the hot request path and feeds
// the vote metrics. Events are best-effort; the vote itself is durable
// before an event is ever emitted.
type StatsWorker struct {
	Ch <-chan VoteEvent
}

func NewStatsWorker(ch <-chan VoteEvent) *StatsWorker {
	return &StatsWorker{Ch: ch}
}

func (w *StatsWorker) Run(ctx context.Context) {
	log.Println("stats worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("stats worker stopped")
			return
		case ev := <-w.Ch:
			metrics.IncVote(ev.Direction)
			log.Printf("vote event: product=%s user=%d direction=%s\n", ev.ProductID, ev.UserID, ev.Direction)
		}
	}
}
