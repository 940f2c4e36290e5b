package outcomes

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/5w1tchy/pinguard/internal/pin"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis hash holding aggregate counters.
const DefaultKey = "pinguard:outcomes"

// Only aggregate labels are queued; the PIN and dates never leave the handler.
type event struct {
	strength string
	reasons  []string
	patterns []string
}

// Queue batches validation outcomes into HINCRBY calls on a Redis hash.
// A nil *Queue is valid and drops everything.
type Queue struct {
	rdb  redis.Cmdable
	key  string
	ch   chan event
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Start spins up N workers with a buffered channel.
// Suggested: buf=10000, workers=2
func Start(rdb redis.Cmdable, key string, buf, workers int) *Queue {
	if key == "" {
		key = DefaultKey
	}
	q := &Queue{
		rdb:  rdb,
		key:  key,
		ch:   make(chan event, buf),
		done: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue tries to queue an outcome without blocking.
// If the buffer is full, the event is dropped (acceptable for stats).
func (q *Queue) Enqueue(res pin.Result) {
	if q == nil {
		return
	}
	ev := event{
		strength: string(res.Strength),
		reasons:  res.WeaknessReasons,
		patterns: res.DetectedPatterns,
	}
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.ch <- ev:
	default:
		// buffer full; drop
	}
}

// Shutdown signals workers to stop, flushes remaining events, and waits.
func (q *Queue) Shutdown() {
	if q == nil {
		return
	}
	q.once.Do(func() { close(q.done) })
	q.wg.Wait()
}

// Read returns the counters stored under key.
func Read(ctx context.Context, rdb redis.Cmdable, key string) (map[string]int64, error) {
	if key == "" {
		key = DefaultKey
	}
	raw, err := rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}

// --- internal ---

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 500 * time.Millisecond
)

func (q *Queue) worker() {
	defer q.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]event, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		_ = q.write(batch) // best-effort; errors are ignored for stats
		batch = batch[:0]
	}

	for {
		select {
		case <-q.done:
			// drain quickly then flush
			for {
				select {
				case ev := <-q.ch:
					batch = append(batch, ev)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case ev := <-q.ch:
			batch = append(batch, ev)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}

// write folds a batch into per-field deltas and applies them in one pipeline.
func (q *Queue) write(batch []event) error {
	deltas := make(map[string]int64)
	for _, ev := range batch {
		deltas["total"]++
		deltas["strength:"+strings.ToLower(ev.strength)]++
		for _, r := range ev.reasons {
			deltas["reason:"+r]++
		}
		for _, p := range ev.patterns {
			deltas["pattern:"+p]++
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTO)
	defer cancel()
	pipe := q.rdb.Pipeline()
	for field, n := range deltas {
		pipe.HIncrBy(ctx, q.key, field, n)
	}
	_, err := pipe.Exec(ctx)
	return err
}
