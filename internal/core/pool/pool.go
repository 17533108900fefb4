package pool

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is one unit of phase work. A returned error or a panic is logged and
// counted; it never cancels sibling tasks.
type Task func() error

// Pool is a bounded fork-join executor shared by the parallel tick phases.
// Each Join blocks until every task it was given has finished.
type Pool struct {
	size int
	log  *zap.Logger
}

// New creates a pool running at most size tasks at once. size <= 0 means
// one worker per available CPU.
func New(size int, log *zap.Logger) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{size: size, log: log}
}

func (p *Pool) Size() int { return p.size }

// Join runs tasks concurrently and waits for all of them. It returns the
// number of tasks that failed.
func (p *Pool) Join(phase string, tasks ...Task) int {
	var g errgroup.Group
	g.SetLimit(p.size)

	var failed atomic.Int32
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := p.run(task); err != nil {
				failed.Add(1)
				p.log.Error("phase task failed",
					zap.String("phase", phase),
					zap.Int("task", i),
					zap.Error(err))
			}
			// Failures stay local to the task.
			return nil
		})
	}
	_ = g.Wait()
	return int(failed.Load())
}

func (p *Pool) run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task()
}
