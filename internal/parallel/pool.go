// Package parallel provides the worker pool and row partitioning used to
// fill downsampling regions concurrently.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that execute batches of work.
//
// Every worker owns a queue. Batches are spread round-robin over the queues,
// and an idle worker takes items from the other queues before blocking, so a
// slow band in one region does not hold back the rest of the batch.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered queue per worker.
	queues []chan func()

	// done is closed by Close to stop the workers.
	done chan struct{}

	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(8, workers*4)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			run(fn)
		default:
			if fn := p.take(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case fn := <-own:
				run(fn)
			}
		}
	}
}

// take removes one pending item from another worker's queue, or returns nil.
func (p *WorkerPool) take(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			run(fn)
		default:
			return
		}
	}
}

// ExecuteAll runs every item of work on the pool and waits for all of them.
// On a closed pool, or one closed while ExecuteAll runs, the remaining items
// run on the calling goroutine, so callers always observe completed work
// when ExecuteAll returns. ExecuteAll must not be called from a work item.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			run(fn)
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(work))

	for i, fn := range work {
		wrapped := func() {
			defer pending.Done()
			run(fn)
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}

	finished := make(chan struct{})
	go func() {
		pending.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-p.done:
		// A worker that already drained its queue on Close will not see
		// items sent afterwards. Once all workers have exited, run the
		// leftovers here.
		p.wg.Wait()
		for _, q := range p.queues {
			drain(q)
		}
		<-finished
	}
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
