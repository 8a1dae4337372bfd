package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartCapturesStdout(t *testing.T) {
	r := New(10 * time.Second)
	job := r.Start("sh", []string{"-c", "printf 'hello\\nworld\\n'"}, t.TempDir())
	res := job.Wait()

	require.True(t, res.Ok())
	require.Equal(t, "hello\nworld\n", res.Stdout)
	require.Empty(t, res.Stderr)
}

func TestStartCapturesStderrAndExitCode(t *testing.T) {
	r := New(10 * time.Second)
	job := r.Start("sh", []string{"-c", "echo oops >&2; exit 3"}, t.TempDir())
	res := job.Wait()

	require.False(t, res.Ok())
	require.Equal(t, 3, res.ExitCode)
	require.Equal(t, "oops\n", res.Stderr)
}

func TestSpawnFailureProducesSyntheticResult(t *testing.T) {
	r := New(10 * time.Second)
	job := r.Start("definitely-not-a-real-executable", nil, t.TempDir())
	res := job.Wait()

	require.Equal(t, -1, res.ExitCode)
	require.NotEmpty(t, res.Stderr)
}

func TestStopKillsProcess(t *testing.T) {
	r := New(0)
	job := r.Start("sleep", []string{"30"}, t.TempDir())

	done := make(chan Result, 1)
	go func() { done <- job.Wait() }()

	job.Stop()

	select {
	case res := <-done:
		require.False(t, res.Ok())
	case <-time.After(5 * time.Second):
		t.Fatal("stopped job never completed")
	}
}

func TestTimeoutProducesNonzeroResult(t *testing.T) {
	r := New(100 * time.Millisecond)
	job := r.Start("sleep", []string{"30"}, t.TempDir())

	done := make(chan Result, 1)
	go func() { done <- job.Wait() }()

	select {
	case res := <-done:
		require.False(t, res.Ok())
	case <-time.After(5 * time.Second):
		t.Fatal("timed-out job never completed")
	}
}

func TestStopAfterCompletionIsHarmless(t *testing.T) {
	r := New(10 * time.Second)
	job := r.Start("true", nil, t.TempDir())
	res := job.Wait()
	require.True(t, res.Ok())

	job.Stop()
	job.Stop()
}
