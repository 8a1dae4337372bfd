package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/runner"
)

// fakeJob satisfies Job without spawning anything. Its result is filled in
// by the test before the command closure calls Wait.
type fakeJob struct {
	res     runner.Result
	stopped bool
	onStop  func()
}

func (j *fakeJob) Wait() runner.Result { return j.res }

func (j *fakeJob) Stop() {
	j.stopped = true
	if j.onStop != nil {
		j.onStop()
	}
}

type startedJob struct {
	args []string
	job  *fakeJob
}

type fakeRunner struct {
	started []*startedJob
}

func (r *fakeRunner) Start(name string, args []string, dir string) Job {
	j := &fakeJob{}
	r.started = append(r.started, &startedJob{args: args, job: j})
	return j
}

func (r *fakeRunner) last() *startedJob {
	if len(r.started) == 0 {
		return nil
	}
	return r.started[len(r.started)-1]
}

func sourceLines() []string {
	return []string{"package x", "var y = 1", "func f() {}"}
}

func blameOutput() string {
	return strings.Join([]string{
		"a1b2c3d (Alice 2024-01-01 1) package x",
		"b2c3d4e (Bob   2024-01-02 2) var y = 1",
		"a1b2c3d (Alice 2024-01-01 3) func f() {}",
	}, "\n") + "\n"
}

func okResult(stdout string) runner.Result {
	return runner.Result{ExitCode: 0, Stdout: stdout}
}

func failResult(code int, stderr string) runner.Result {
	return runner.Result{ExitCode: code, Stderr: stderr}
}

// newTestModel builds a model with a fake runner, sized, with a session
// open and its first blame render in flight.
func newTestModel(t *testing.T) (*Model, *fakeRunner, tea.Cmd) {
	t.Helper()
	cfg := config.DefaultConfig()
	log := logrus.New()
	log.SetOutput(io.Discard)

	fr := &fakeRunner{}
	m := NewModel(cfg, log, fr, "/repo", "/repo/file.go", "file.go", sourceLines(), "")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	cmd := m.Init()
	require.NotNil(t, cmd)
	return m, fr, cmd
}

// deliver completes the pending fake job with res and feeds the resulting
// message through Update, returning any follow-up command.
func deliver(t *testing.T, m *Model, fr *fakeRunner, cmd tea.Cmd, res runner.Result) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	fr.last().job.res = res
	_, next := m.Update(cmd())
	return next
}

// renderedModel returns a model whose first blame render has completed.
func renderedModel(t *testing.T) (*Model, *fakeRunner) {
	t.Helper()
	m, fr, cmd := newTestModel(t)
	next := deliver(t, m, fr, cmd, okResult(blameOutput()))
	require.Nil(t, next)
	return m, fr
}

func pressKey(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}
