package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/beloved/internal/config"
	"github.com/roach88/beloved/internal/model"
	"github.com/roach88/beloved/internal/slot"
	"github.com/roach88/beloved/internal/testutil"
)

const testToday = "2024-03-10"

// cliHarness runs commands against one in-memory record with a fixed clock
// and sequential ids shared across invocations.
type cliHarness struct {
	t     *testing.T
	mem   *slot.Memory
	clock *testutil.FixedClock
	ids   *testutil.SequentialIDs
}

type result struct {
	stdout string
	stderr string
	err    error
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	return &cliHarness{
		t:     t,
		mem:   slot.NewMemory(),
		clock: testutil.NewFixedClock(testToday),
		ids:   testutil.NewSequentialIDs("id"),
	}
}

func (h *cliHarness) deps() Deps {
	return Deps{
		Config: &config.AppConfig{
			Backend:     slot.BackendMemory,
			DBPath:      "memory",
			LogLevel:    "warn",
			Environment: "development",
		},
		Slots:     h.mem,
		Clock:     h.clock,
		IDs:       h.ids,
		Rand:      rand.NewPCG(7, 11),
		LogOutput: io.Discard,
	}
}

// run executes one command line.
func (h *cliHarness) run(args ...string) result {
	h.t.Helper()
	return execute(NewRootCommand(h.deps()), args...)
}

// unlocked executes a command line with the default PIN.
func (h *cliHarness) unlocked(args ...string) result {
	h.t.Helper()
	return h.run(append(args, "--pin", model.DefaultPIN)...)
}

// data executes a command with --format json and the default PIN, requires
// success and decodes the response data into v.
func (h *cliHarness) data(v any, args ...string) {
	h.t.Helper()
	res := h.unlocked(append(args, "--format", "json")...)
	require.NoError(h.t, res.err, "stdout: %s", res.stdout)

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(h.t, json.Unmarshal([]byte(res.stdout), &resp), res.stdout)
	require.Equal(h.t, "ok", resp.Status)
	require.NoError(h.t, json.Unmarshal(resp.Data, v))
}

func execute(cmd interface {
	SetOut(io.Writer)
	SetErr(io.Writer)
	SetArgs([]string)
	Execute() error
}, args ...string) result {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
