package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cj3636/gblame/internal/runner"
)

// Job is one in-flight git invocation. The concrete implementation lives in
// the runner package; tests substitute fakes with instrumented Stop hooks.
type Job interface {
	Wait() runner.Result
	Stop()
}

// Runner starts git invocations. The interface keeps the model testable
// without spawning processes.
type Runner interface {
	Start(name string, args []string, dir string) Job
}

// ExecRunner adapts a *runner.Runner to the Runner interface.
type ExecRunner struct {
	R *runner.Runner
}

func (e ExecRunner) Start(name string, args []string, dir string) Job {
	return e.R.Start(name, args, dir)
}

// Completion messages. Each carries the job handle it belongs to so the
// update loop can drop results from superseded jobs.

// blameMsg delivers a finished blame invocation. rev is the revision the
// blame was pinned to, empty for the working tree.
type blameMsg struct {
	job Job
	rev string
	res runner.Result
}

// parentMsg delivers a rev-parse resolving rev's parent.
type parentMsg struct {
	job Job
	rev string
	res runner.Result
}

// snapshotMsg delivers the file's content as of parent, fetched because the
// user time-traveled from a line blamed on rev.
type snapshotMsg struct {
	job    Job
	rev    string
	parent string
	res    runner.Result
}

// detailMsg delivers full commit detail for rev.
type detailMsg struct {
	job Job
	rev string
	res runner.Result
}

// deltaNewMsg delivers the file's content at rev, the first half of the
// detail overlay's revision delta.
type deltaNewMsg struct {
	job Job
	rev string
	res runner.Result
}

// deltaOldMsg delivers the file's content at rev's parent, closing the
// delta. newLines carries the content from the preceding deltaNewMsg.
type deltaOldMsg struct {
	job      Job
	rev      string
	newLines []string
	res      runner.Result
}

// startJob stops the session's active job, starts a git invocation, records
// it as the active job, and returns a command that waits for its result.
// The returned message is delivered on the program's own update loop, so
// every mutation triggered by a completion stays serialized.
func (m *Model) startJob(args []string, wrap func(Job, runner.Result) tea.Msg) tea.Cmd {
	s := m.session
	if s.ActiveJob != nil {
		s.ActiveJob.Stop()
		s.ActiveJob = nil
	}
	m.log.WithField("args", args).Debug("starting git job")
	job := m.run.Start("git", args, m.repoRoot)
	s.ActiveJob = job
	return func() tea.Msg {
		return wrap(job, job.Wait())
	}
}

// claimJob checks a completion against the session's active job. It returns
// false for results that are stale: the job was superseded or the session
// it belonged to is gone.
func (m *Model) claimJob(job Job) bool {
	s := m.session
	if s == nil || s.ActiveJob != job {
		m.log.Debug("dropping stale job result")
		return false
	}
	s.ActiveJob = nil
	return true
}
