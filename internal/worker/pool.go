package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Queues consumed by the pool. Producers enqueue through Dispatcher,
// which the services see as the Encolador interface.
const (
	QueueCocina  = "jobs:cocina"
	QueueEmail   = "jobs:email"
	QueueAlertas = "jobs:alertas"
)

const maxJobAttempts = 3

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler consumes one job payload. A non-nil error triggers a retry;
// after maxJobAttempts the job lands in the DLQ.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Handlers maps a queue name to its consumer.
type Handlers map[string]Handler

// Dispatcher enqueues async jobs into Redis lists. The worker pool
// dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Encolar pushes a job onto the named queue.
func (d *Dispatcher) Encolar(ctx context.Context, cola string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: cola, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, cola, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming every queue
// that has a handler. Each goroutine blocks on BRPOP — zero CPU when
// idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	queues := make([]string, 0, len(handlers))
	for q := range handlers {
		queues = append(queues, q)
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, queues, handlers)
	}
	log.Info().Int("workers", numWorkers).Strs("queues", queues).Msg("worker pool started")
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, queues []string, handlers Handlers) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	handler, ok := handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Msg("no handler registered for queue")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxJobAttempts; attempt++ {
		lastErr = handler(ctx, job.Payload)
		if lastErr == nil {
			return
		}
		log.Warn().Str("queue", queue).Int("attempt", attempt).Err(lastErr).Msg("job failed")
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, lastErr.Error(), maxJobAttempts)
}
