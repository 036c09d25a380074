// Package worker renders batches of textures in parallel.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/pipeline"
)

// Generator renders one texture job.
// This matches the signature of pipeline.Generator.Generate.
type Generator interface {
	Generate(ctx context.Context, job pipeline.Job, force bool) (path string, err error)
}

// Task is one texture to render.
type Task struct {
	Job   pipeline.Job
	Force bool
}

// Result is the outcome of a Task.
type Result struct {
	Task    Task
	Path    string
	Err     error
	Elapsed time.Duration
}

// Canceled reports whether the job was stopped or never started because
// the batch was cancelled.
func (r Result) Canceled() bool {
	return errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)
}

// ProgressFunc is called once per finished task. Calls never overlap and
// completed increases by one each time.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Generator  Generator
	OnProgress ProgressFunc
}

// Pool renders texture jobs with a fixed number of workers.
type Pool struct {
	workers    int
	generator  Generator
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

// Run renders tasks and returns one Result per task, in task order.
//
// Two tasks for the same job would write the same file, so every repeat of
// a job fails without rendering. Once ctx is done no further job starts and
// the jobs that were still queued are recorded as cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	results := make([]Result, len(tasks))
	tally := &tally{total: len(tasks), onProgress: p.onProgress}

	queue := make(chan int)
	var wg sync.WaitGroup
	for n := min(p.workers, len(tasks)); n > 0; n-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = p.render(ctx, tasks[i])
				tally.record(results[i])
			}
		}()
	}

	stopped := p.feed(ctx, tasks, queue, results, tally)
	close(queue)

	for i := stopped; i < len(tasks); i++ {
		results[i] = Result{Task: tasks[i], Err: ctx.Err()}
		tally.record(results[i])
	}

	wg.Wait()
	return results
}

// feed hands task indexes to the workers and returns the index of the
// first task it did not hand out.
func (p *Pool) feed(ctx context.Context, tasks []Task, queue chan<- int, results []Result, tally *tally) int {
	seen := make(map[pipeline.Job]int, len(tasks))
	for i, task := range tasks {
		if first, ok := seen[task.Job]; ok {
			results[i] = Result{
				Task: task,
				Err:  errs.Invalid(errs.StageConfigure, "job %s repeats task %d", task.Job, first),
			}
			tally.record(results[i])
			continue
		}
		seen[task.Job] = i

		if ctx.Err() != nil {
			return i
		}
		select {
		case queue <- i:
		case <-ctx.Done():
			return i
		}
	}
	return len(tasks)
}

func (p *Pool) render(ctx context.Context, task Task) Result {
	if err := ctx.Err(); err != nil {
		return Result{Task: task, Err: err}
	}

	start := time.Now()
	path, err := p.generator.Generate(ctx, task.Job, task.Force)
	return Result{
		Task:    task,
		Path:    path,
		Err:     err,
		Elapsed: time.Since(start),
	}
}

// tally counts finished tasks and forwards them to the progress callback.
type tally struct {
	mu         sync.Mutex
	total      int
	completed  int
	failed     int
	onProgress ProgressFunc
}

func (t *tally) record(r Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if r.Err != nil {
		t.failed++
	}
	if t.onProgress != nil {
		t.onProgress(t.completed, t.total, t.failed)
	}
}
