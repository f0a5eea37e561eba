// Package queue holds the background audit writer. Use cases record entries
// fire-and-forget; workers drain them to the repository so request latency
// never includes an audit write.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/astroconsulta/platform-api/internal/api/metrics"
	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditWriter routes audit entries to a fixed set of workers using consistent
// hashing on the user id, preserving per-user entry ordering.
type AuditWriter struct {
	workers []chan domain.AuditLog
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditWriter creates an AuditWriter with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditWriter(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &AuditWriter{
		workers: make([]chan domain.AuditLog, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan domain.AuditLog, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (w *AuditWriter) Start(ctx context.Context) {
	for i, ch := range w.workers {
		go w.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for its user's worker. When the worker channel is
// full the entry is dropped with a warning; auditing never blocks a use case.
func (w *AuditWriter) Record(entry domain.AuditLog) {
	idx := w.shardIndex(entry.UserID)
	select {
	case w.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(w.workers[idx])))
	default:
		w.log.Warn().
			Str("user_id", entry.UserID).
			Str("action", string(entry.Action)).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (w *AuditWriter) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(w.workers)
}

func (w *AuditWriter) runWorker(ctx context.Context, id int, ch <-chan domain.AuditLog) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := w.repo.Log(ctx, &entry); err != nil {
				w.log.Error().Err(err).
					Str("user_id", entry.UserID).
					Str("action", string(entry.Action)).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
