package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Result captures everything a completed job reports back. A job that could
// not be spawned still produces a Result (ExitCode -1, error text in Stderr)
// so callers have a single shape to branch on.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports whether the process ran and exited cleanly.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Runner spawns external commands and buffers their output until exit.
type Runner struct {
	// Timeout bounds each job's lifetime. Zero disables the deadline.
	Timeout time.Duration
}

// New returns a Runner with the given per-job timeout.
func New(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout}
}

// Job is one in-flight command invocation. Its result is delivered exactly
// once through Wait.
type Job struct {
	cancel context.CancelFunc
	done   chan Result
}

// Start launches name with args in dir and returns immediately. The process
// runs until it exits, the job is stopped, or the runner's timeout elapses.
func (r *Runner) Start(name string, args []string, dir string) *Job {
	ctx := context.Background()
	var cancel context.CancelFunc
	if r.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	job := &Job{cancel: cancel, done: make(chan Result, 1)}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		cancel()
		job.done <- Result{ExitCode: -1, Stderr: err.Error()}
		return job
	}

	go func() {
		defer cancel()
		err := cmd.Wait()
		res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			res.ExitCode = 0
		case errors.As(err, &exitErr):
			res.ExitCode = exitErr.ExitCode()
		default:
			res.ExitCode = -1
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
		job.done <- res
	}()

	return job
}

// Wait blocks until the job completes and returns its result. It must be
// called at most once per job.
func (j *Job) Wait() Result {
	return <-j.done
}

// Stop requests termination of the underlying process. The job still
// completes: its result is delivered to whoever is waiting, typically with a
// nonzero exit code.
func (j *Job) Stop() {
	j.cancel()
}
