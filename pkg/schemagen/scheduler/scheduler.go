package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
)

// ErrNotStarted is the cause for tasks that were never handed to a worker
// because the run was cancelled first
var ErrNotStarted = errors.New("not started")

// TaskInvoker runs a single conversion task
type TaskInvoker interface {
	Invoke(ctx context.Context, task *convert.Task, log log.Logger) (*convert.Result, error)
}

// Options configure the scheduler
type Options struct {
	// Workers is the maximum number of tasks running at the same time
	Workers int

	// TaskTimeout bounds a single task, 0 means no limit
	TaskTimeout time.Duration
}

// Scheduler runs conversion tasks on a bounded pool of workers. A failing task
// never stops its siblings.
type Scheduler struct {
	invoker TaskInvoker
	options Options
	log     log.Logger
}

// New creates a new scheduler
func New(invoker TaskInvoker, options Options, log log.Logger) *Scheduler {
	if options.Workers <= 0 {
		options.Workers = 1
	}

	return &Scheduler{
		invoker: invoker,
		options: options,
		log:     log,
	}
}

// Run executes all tasks and waits for them. Every task has exactly one
// outcome in the returned results, also when ctx is cancelled midway.
func (s *Scheduler) Run(ctx context.Context, tasks []*convert.Task) Results {
	workers := s.options.Workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	workCh := make(chan *convert.Task)
	doneCh := make(chan *Outcome, len(tasks))

	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for task := range workCh {
				doneCh <- s.runTask(ctx, task)
			}
		}()
	}

	s.log.Infof("Building %d versions with %d workers", len(tasks), workers)
	dispatched := 0
dispatch:
	for _, task := range tasks {
		// a cancelled run must not hand out more work even if a worker is idle
		if ctx.Err() != nil {
			break
		}

		select {
		case workCh <- task:
			dispatched++
		case <-ctx.Done():
			break dispatch
		}
	}
	if dispatched < len(tasks) {
		s.abandon(tasks[dispatched:], ctx.Err(), doneCh)
	}
	close(workCh)

	wg.Wait()
	close(doneCh)

	results := Results{}
	for outcome := range doneCh {
		results[outcome.Version] = outcome
	}
	return results
}

func (s *Scheduler) abandon(tasks []*convert.Task, cause error, doneCh chan<- *Outcome) {
	for _, task := range tasks {
		doneCh <- &Outcome{
			Version: task.Version,
			Err:     errors.Wrapf(ErrNotStarted, "%v", cause),
		}
	}

	s.log.Warnf("Cancelled before %d versions could be started", len(tasks))
}

func (s *Scheduler) runTask(ctx context.Context, task *convert.Task) (outcome *Outcome) {
	taskLog := log.NewPrefixLogger("["+task.Version+"] ", s.log)
	outcome = &Outcome{Version: task.Version}

	taskCtx := ctx
	if s.options.TaskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, s.options.TaskTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome.Err = errors.Errorf("panic: %v", r)
		}
		outcome.Duration = time.Since(start)

		if outcome.Err != nil {
			taskLog.Failf("Failed after %s: %v", outcome.Duration.Round(time.Millisecond), outcome.Err)
		} else if outcome.Skipped() {
			taskLog.Done("Already built")
		} else {
			taskLog.Donef("Built in %s", outcome.Duration.Round(time.Millisecond))
		}
	}()

	result, err := s.invoker.Invoke(taskCtx, task, taskLog)
	if err != nil && taskCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		err = errors.Wrapf(err, "timed out after %s", s.options.TaskTimeout)
	}

	outcome.Result = result
	outcome.Err = err
	return outcome
}
