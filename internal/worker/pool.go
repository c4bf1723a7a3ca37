package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"abbafoods/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueuePDF   = "jobs:pdf_pedido"
	QueueEmail = "jobs:email"

	JobPDFPedido = "pdf_pedido"
	JobEmail     = "email"

	// MaxJobAttempts is how many times a job runs before it lands in the DLQ.
	MaxJobAttempts = 3
)

// ErrColaDeshabilitada is returned by the Dispatcher when Redis is not configured.
var ErrColaDeshabilitada = errors.New("cola de trabajos deshabilitada")

// Job is the envelope stored in the Redis lists.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Processor handles the payload of one job type.
type Processor interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists. The zero value and a nil
// *Dispatcher are disabled: every Enqueue returns ErrColaDeshabilitada.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// Enabled reports whether jobs can be queued.
func (d *Dispatcher) Enabled() bool { return d != nil && d.rdb != nil }

// PDFPedidoPayload asks for the order sheet of one order.
type PDFPedidoPayload struct {
	PedidoID string `json:"pedido_id"`
}

func (d *Dispatcher) EnqueuePDFPedido(ctx context.Context, payload PDFPedidoPayload) error {
	return d.enqueue(ctx, QueuePDF, JobPDFPedido, payload)
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	if !d.Enabled() {
		return ErrColaDeshabilitada
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return pushJob(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func pushJob(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

type route struct {
	queue string
	proc  Processor
}

// Pool consumes the job queues with a fixed number of goroutines.
type Pool struct {
	rdb     *redis.Client
	size    int
	metrics *metrics.Registry
	routes  map[string]route // by job type
	queues  []string
}

func NewPool(rdb *redis.Client, size int, mreg *metrics.Registry) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{rdb: rdb, size: size, metrics: mreg, routes: make(map[string]route)}
}

// Register binds a job type to its queue and processor. Call before Start.
func (p *Pool) Register(queue, jobType string, proc Processor) {
	p.routes[jobType] = route{queue: queue, proc: proc}
	for _, q := range p.queues {
		if q == queue {
			return
		}
	}
	p.queues = append(p.queues, queue)
}

// Start launches the workers. Each goroutine blocks on BRPOP, so idle
// workers cost nothing; they exit when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.run(ctx, i)
	}
	log.Info().Int("workers", p.size).Strs("queues", p.queues).Msg("worker pool started")
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	r, ok := p.routes[job.Type]
	if !ok {
		log.Error().Str("queue", queue).Str("type", job.Type).Msg("no processor for job type")
		return
	}

	job.Attempts++
	err := r.proc.Process(ctx, job.Payload)
	p.metrics.Job(job.Type, err)
	if err == nil {
		return
	}

	log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed")
	if p.rdb == nil {
		return
	}
	if job.Attempts >= MaxJobAttempts {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	if perr := pushJob(ctx, p.rdb, queue, job); perr != nil {
		log.Error().Err(perr).Str("queue", queue).Msg("failed to requeue job")
	}
}
