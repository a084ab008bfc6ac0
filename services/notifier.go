package services

import (
	"context"
	"sync"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/metrics"
)

// Task is one unit of background notification work
type Task func(ctx context.Context) error

type queuedTask struct {
	ctx  context.Context
	name string
	run  Task
}

// Notifier runs notification tasks on a single background worker so request
// handlers never wait on the mail relay. Failures are logged and counted.
type Notifier struct {
	tasks   chan queuedTask
	pending sync.WaitGroup
	done    chan struct{}
	log     *logger.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	started bool
	closed  bool
}

func NewNotifier(log *logger.Logger, m *metrics.Metrics, queueSize int) *Notifier {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Notifier{
		tasks:   make(chan queuedTask, queueSize),
		done:    make(chan struct{}),
		log:     log,
		metrics: m,
	}
}

// Start launches the worker goroutine; calling it twice is a no-op
func (n *Notifier) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started {
		return
	}
	n.started = true
	go n.worker()
}

func (n *Notifier) worker() {
	defer close(n.done)
	for t := range n.tasks {
		n.run(t)
		n.pending.Done()
	}
}

func (n *Notifier) run(t queuedTask) {
	ctx := n.log.WithField(t.ctx, "notification", t.name)

	defer func() {
		if r := recover(); r != nil {
			n.metrics.IncNotification(t.name, false)
			n.log.From(ctx).Error().Interface("panic", r).Msg("notification failed")
		}
	}()

	if err := t.run(ctx); err != nil {
		n.metrics.IncNotification(t.name, false)
		n.log.Error(ctx, "notification failed", err)
		return
	}
	n.metrics.IncNotification(t.name, true)
}

// Dispatch queues task without blocking. The task keeps the request's log
// fields but not its cancellation. A full or stopped queue drops the task.
func (n *Notifier) Dispatch(ctx context.Context, name string, task Task) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		n.metrics.IncNotification(name, false)
		n.log.From(ctx).Warn().Str("notification", name).Msg("notifier stopped, dropping notification")
		return
	}

	n.pending.Add(1)
	select {
	case n.tasks <- queuedTask{ctx: context.WithoutCancel(ctx), name: name, run: task}:
	default:
		n.pending.Done()
		n.metrics.IncNotification(name, false)
		n.log.From(ctx).Warn().Str("notification", name).Msg("notification queue full, dropping notification")
	}
}

// Wait blocks until every queued task has finished
func (n *Notifier) Wait() {
	n.pending.Wait()
}

// Stop refuses new tasks, drains the queue and waits for the worker or ctx
func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.tasks)
	started := n.started
	n.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
