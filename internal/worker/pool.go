package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueShiftReport = "jobs:shift_report"
	QueueEmail       = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueShiftReport pushes a end-of-shift report job to Redis.
func (d *Dispatcher) EnqueueShiftReport(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueShiftReport, "shift_report", payload)
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// requeue pushes a job back with its attempt counter bumped.
func requeue(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	job.Attempts++
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// DeadLetterPrefix + source queue name is the Redis list where exhausted
// jobs are parked (e.g. dlq:jobs:shift_report).
const DeadLetterPrefix = "dlq:"

// DeadJob is what an exhausted job looks like on the dead letter list.
// Self-describing: an operator can LRANGE the list, read the reason and
// re-enqueue the payload by hand once the cause is fixed. For shift_report
// jobs the payload holds the shift id, so the lost recap is recoverable.
type DeadJob struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failedAt"`
}

func parkDeadJob(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) {
	entry := DeadJob{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Reason:   reason,
		Attempts: job.Attempts + 1,
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to marshal dead job")
		return
	}
	if err := rdb.LPush(ctx, DeadLetterPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", DeadLetterPrefix+queue).Msg("failed to park dead job")
		return
	}
	log.Warn().
		Str("type", job.Type).
		Str("queue", queue).
		Str("reason", reason).
		Int("attempts", entry.Attempts).
		Msg("job exhausted retries, parked on dead letter list")
}

// Handlers maps job types to their processors.
type Handlers struct {
	ShiftReport *ReportWorker
	Email       *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	queues := []string{QueueShiftReport, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
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

const maxAttempts = 3

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch job.Type {
	case "shift_report":
		if handlers.ShiftReport != nil {
			err = handlers.ShiftReport.Process(ctx, job.Payload)
		}
	case "email":
		if handlers.Email != nil {
			err = handlers.Email.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
		return
	}

	if err == nil {
		return
	}

	if job.Attempts+1 >= maxAttempts {
		parkDeadJob(ctx, rdb, queue, job, err.Error())
		return
	}
	log.Warn().
		Str("type", job.Type).
		Int("attempt", job.Attempts+1).
		Err(err).
		Msg("job failed, requeueing")
	if rqErr := requeue(ctx, rdb, queue, job); rqErr != nil {
		log.Error().Err(rqErr).Str("queue", queue).Msg("failed to requeue job")
	}
}
