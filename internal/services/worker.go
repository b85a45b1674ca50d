package services

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Job is one pipeline run. It must honour ctx so a caller that gives up also
// stops the work in flight.
type Job func(ctx context.Context) (string, error)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	Do(ctx context.Context, job Job) (string, error)
}

type jobResult struct {
	text string
	err  error
}

type task struct {
	ctx    context.Context
	job    Job
	result chan jobResult
}

// worker runs queued jobs one at a time on a single goroutine, so at most one
// analysis is in flight and the temp upload file is never written concurrently.
type worker struct {
	jobQueue chan *task
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewWorker(queueSize int) Worker {
	if queueSize < 1 {
		queueSize = 1
	}

	return &worker{
		jobQueue: make(chan *task, queueSize),
		stopChan: make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting analysis worker (queue size %d)\n", cap(w.jobQueue))

	w.wg.Add(1)
	go w.processJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping analysis worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Analysis worker stopped")
	})
}

// Do implements Worker. It enqueues the job and blocks until the job finishes,
// ctx is done or the worker stops. The job's context is cancelled as soon as
// Do returns.
func (w *worker) Do(ctx context.Context, job Job) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	select {
	case <-w.stopChan:
		return "", ErrWorkerStopped
	default:
	}

	t := &task{ctx: ctx, job: job, result: make(chan jobResult, 1)}

	select {
	case w.jobQueue <- t:
	default:
		log.Printf("⚠️  Analysis queue full (%d waiting)\n", len(w.jobQueue))
		return "", ErrWorkerBusy
	}

	select {
	case res := <-t.result:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-w.stopChan:
		return "", ErrWorkerStopped
	}
}

func (w *worker) processJobs(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case t := <-w.jobQueue:
			if err := t.ctx.Err(); err != nil {
				t.result <- jobResult{err: err}
				continue
			}
			t.result <- w.run(t)
		}
	}
}

func (w *worker) run(t *task) (res jobResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Analysis job panicked: %v\n", r)
			res = jobResult{err: fmt.Errorf("analysis job panicked: %v", r)}
		}
	}()

	text, err := t.job(t.ctx)
	return jobResult{text: text, err: err}
}
