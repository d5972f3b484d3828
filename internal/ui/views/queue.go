package views

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// storeJob runs one store call and returns the message to report, or nil
type storeJob func(ctx context.Context) tea.Msg

// storeQueue runs store calls one at a time in the order they were
// enqueued. Results are collected until the program picks them up with
// wait, so the writer never blocks on the UI.
type storeQueue struct {
	ctx  context.Context
	jobs chan storeJob
	done chan struct{}

	// pending counts enqueued jobs that have not finished
	pending sync.WaitGroup

	// sendMu guards closed and sends on jobs; mu guards results
	sendMu sync.Mutex
	closed bool

	mu      sync.Mutex
	results []tea.Msg
	ready   chan struct{}
}

func newStoreQueue(ctx context.Context) *storeQueue {
	q := &storeQueue{
		ctx:   ctx,
		jobs:  make(chan storeJob, 64),
		done:  make(chan struct{}),
		ready: make(chan struct{}, 1),
	}
	go q.run()
	return q
}

func (q *storeQueue) run() {
	defer close(q.done)
	for job := range q.jobs {
		if msg := job(q.ctx); msg != nil {
			q.push(msg)
		}
		q.pending.Done()
	}
}

// enqueue schedules job after every job enqueued before it. Jobs
// enqueued after Close are dropped.
func (q *storeQueue) enqueue(job storeJob) {
	q.sendMu.Lock()
	defer q.sendMu.Unlock()
	if q.closed {
		return
	}
	q.pending.Add(1)
	q.jobs <- job
}

func (q *storeQueue) push(msg tea.Msg) {
	q.mu.Lock()
	q.results = append(q.results, msg)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *storeQueue) pop() (tea.Msg, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.results) == 0 {
		return nil, false
	}
	msg := q.results[0]
	q.results = q.results[1:]
	return msg, true
}

// wait blocks until a result is available. It returns nil once the
// queue is closed and drained.
func (q *storeQueue) wait() tea.Msg {
	for {
		if msg, ok := q.pop(); ok {
			return msg
		}
		select {
		case <-q.ready:
		case <-q.done:
			msg, _ := q.pop()
			return msg
		}
	}
}

// Close stops accepting jobs and waits for the queued ones to finish
func (q *storeQueue) Close() error {
	q.sendMu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.sendMu.Unlock()

	<-q.done
	return nil
}
