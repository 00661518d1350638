package states

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dirwatcher/dirwatcher/configs"
	"github.com/dirwatcher/dirwatcher/directory"
	"github.com/dirwatcher/dirwatcher/framework"
	"github.com/dirwatcher/dirwatcher/states/kv"
)

func newTestState(t *testing.T) (*ShellState, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	config := &configs.Config{
		Backend:  configs.BackendMemory,
		RootPath: "states-test",
	}
	buf := &bytes.Buffer{}
	dir := directory.New(kv.NewAuditKV(kv.NewMemoryKV(config.RootPath), zap.NewNop()))
	return Start(config, dir, WithOutput(buf), WithLogger(zap.NewNop())), buf
}

func process(t *testing.T, s *ShellState, buf *bytes.Buffer, line string) string {
	t.Helper()
	buf.Reset()
	next, err := s.Process(line)
	require.NoError(t, err)
	require.Same(t, s, next)
	return buf.String()
}

func TestExit(t *testing.T) {
	for _, line := range []string{"exit", "x", "EXIT\n", "x extra args"} {
		t.Run(line, func(t *testing.T) {
			s, _ := newTestState(t)
			next, err := s.Process(line)
			assert.True(t, errors.Is(err, ExitErr))
			assert.True(t, next.IsEnding())

			again, err := next.Process("help")
			assert.True(t, errors.Is(err, ExitErr))
			assert.Same(t, next, again)
		})
	}
}

func TestHelp(t *testing.T) {
	s, buf := newTestState(t)
	for _, line := range []string{"help", "?", "HELP"} {
		out := process(t, s, buf, line)
		assert.Contains(t, out, "Help menu")
		assert.Contains(t, out, "green are commands, blue are mandatory args, magenta are optional args")
		assert.Contains(t, out, "publish user value:")
		assert.Contains(t, out, "root|root_hash epoch:")
		assert.Contains(t, out, "retrieve the root hash at given epoch (default = latest epoch)")
	}
}

func TestHelpLineAlignment(t *testing.T) {
	color.NoColor = true
	lines := helpLines(framework.Vocabulary)
	for _, line := range lines {
		idx := strings.Index(line, ":")
		require.Greater(t, idx, 0)
		rest := line[idx+1:]
		desc := strings.TrimLeft(rest, " ")
		assert.Equal(t, helpColumn+2, idx+1+len(rest)-len(desc), line)
	}
}

func helpLines(vocabulary []framework.CommandDesc) []string {
	result := make([]string, 0, len(vocabulary))
	for _, desc := range vocabulary {
		result = append(result, helpLine(desc))
	}
	return result
}

func TestDirectoryCommands(t *testing.T) {
	s, buf := newTestState(t)

	out := process(t, s, buf, "publish alice key1\n")
	assert.Contains(t, out, "Published version 1 for user alice at epoch 1")

	out = process(t, s, buf, "PUBLISH alice Key2\r\n")
	assert.Contains(t, out, "Published version 2 for user alice at epoch 2")

	out = process(t, s, buf, "lookup alice")
	assert.Contains(t, out, "Value: Key2")

	out = process(t, s, buf, "history alice")
	assert.Contains(t, out, "Key history of alice")

	out = process(t, s, buf, "audit 0 2")
	assert.Contains(t, out, "Verified: true")

	out = process(t, s, buf, "root")
	assert.Contains(t, out, "Root hash at epoch 2 (latest)")

	out = process(t, s, buf, "root_hash 1")
	assert.Contains(t, out, "Root hash at epoch 1:")

	// unparsable epoch falls back to latest
	out = process(t, s, buf, "root abc")
	assert.Contains(t, out, "Root hash at epoch 2 (latest)")

	assert.EqualValues(t, 8, s.processed.Load())
}

func TestEngineErrorsKeepState(t *testing.T) {
	s, buf := newTestState(t)

	next, err := s.Process("lookup nobody")
	assert.True(t, errors.Is(err, directory.ErrUserNotFound))
	assert.Same(t, s, next)

	next, err = s.Process("audit 2 1")
	assert.True(t, errors.Is(err, directory.ErrInvalidEpochRange))
	assert.Same(t, s, next)

	next, err = s.Process("root 5")
	assert.True(t, errors.Is(err, directory.ErrEpochNotFound))
	assert.Same(t, s, next)

	assert.Empty(t, buf.String())
	assert.EqualValues(t, 3, s.failed.Load())
	assert.EqualValues(t, 0, s.processed.Load())
}

func TestInvalidAndUnknown(t *testing.T) {
	s, buf := newTestState(t)

	out := process(t, s, buf, "publish alice")
	assert.Equal(t, "Command publish received invalid arguments. Check help for syntax\n", out)

	out = process(t, s, buf, "audit -1 5")
	assert.Equal(t, "Command audit received invalid arguments. Check help for syntax\n", out)

	out = process(t, s, buf, "Frobnicate now")
	assert.Equal(t, "Unknown command: Frobnicate now\n", out)

	out = process(t, s, buf, "\n")
	assert.Empty(t, out)
	out = process(t, s, buf, "")
	assert.Empty(t, out)

	assert.EqualValues(t, 3, s.rejected.Load())
}

func TestFlushAndInfo(t *testing.T) {
	s, buf := newTestState(t)

	process(t, s, buf, "publish bob k")
	process(t, s, buf, "publish carol k")

	out := process(t, s, buf, "info")
	assert.Contains(t, out, "dirwatcher info")
	assert.Contains(t, out, "states-test")
	assert.Regexp(t, `Users\s+\|\s+2`, out)
	assert.Regexp(t, `Latest Epoch\s+\|\s+2`, out)

	out = process(t, s, buf, "flush")
	assert.Equal(t, "Directory flushed\n", out)

	out = process(t, s, buf, "info")
	assert.Regexp(t, `Users\s+\|\s+0`, out)
	assert.Regexp(t, `Latest Epoch\s+\|\s+0`, out)
}

func TestOutputFormat(t *testing.T) {
	t.Setenv(configs.EnvOutputFormat, "plain")
	s, buf := newTestState(t)

	process(t, s, buf, "publish dave v1")
	out := process(t, s, buf, "lookup dave")
	assert.Equal(t, "dave v1 1 1\n", out)
}

func TestSuggestions(t *testing.T) {
	s, buf := newTestState(t)
	process(t, s, buf, "publish erin v")
	process(t, s, buf, "publish eve v")
	process(t, s, buf, "publish frank v")

	result := s.Suggestions("lookup e")
	assert.Len(t, result, 2)
	assert.Contains(t, result, "erin")
	assert.Contains(t, result, "eve")

	result = s.Suggestions("fl")
	assert.Contains(t, result, "flush")
}

func TestLabel(t *testing.T) {
	s, _ := newTestState(t)
	assert.Equal(t, "Directory(states-test)", s.Label())
	assert.False(t, s.IsEnding())
}
