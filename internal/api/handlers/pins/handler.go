package pins

import (
	"github.com/5w1tchy/pinguard/internal/metrics/outcomes"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	RDB          redis.Cmdable // nil disables /stats
	Outcomes     *outcomes.Queue
	StatsKey     string
	BatchMax     int
	BatchWorkers int
}

func NewHandler(rdb redis.Cmdable, q *outcomes.Queue, batchMax, batchWorkers int) *Handler {
	return &Handler{
		RDB:          rdb,
		Outcomes:     q,
		StatsKey:     outcomes.DefaultKey,
		BatchMax:     batchMax,
		BatchWorkers: batchWorkers,
	}
}
