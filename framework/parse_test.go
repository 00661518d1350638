package framework

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func epochPtr(v uint64) *uint64 {
	return &v
}

func TestParseShellCommands(t *testing.T) {
	cases := []struct {
		input  string
		expect Command
	}{
		{"exit", Exit{}},
		{"EXIT", Exit{}},
		{"x", Exit{}},
		{"X now", Exit{}},
		{"help", Help{}},
		{"HeLp me please", Help{}},
		{"?", Help{}},
		{"flush", Flush{}},
		{"Flush all", Flush{}},
		{"info", Info{}},
		{"INFO verbose", Info{}},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			assert.Equal(t, c.expect, ParseLine(c.input))
		})
	}
}

func TestParseDirectoryCommands(t *testing.T) {
	cases := []struct {
		input  string
		expect DirectoryCommand
	}{
		{"publish alice secret123", Publish{User: "alice", Value: "secret123"}},
		{"publish alice secret123 extra", Publish{User: "alice", Value: "secret123"}},
		{"PUBLISH alice Secret", Publish{User: "alice", Value: "Secret"}},
		{"lookup bob", Lookup{User: "bob"}},
		{"Lookup Bob extra", Lookup{User: "Bob"}},
		{"history carol", KeyHistory{User: "carol"}},
		{"audit 5 10", Audit{Start: 5, End: 10}},
		{"audit 10 5", Audit{Start: 10, End: 5}},
		{"audit 0 18446744073709551615", Audit{Start: 0, End: 18446744073709551615}},
		{"root", RootHash{}},
		{"root_hash", RootHash{}},
		{"ROOT 42", RootHash{Epoch: epochPtr(42)}},
		{"root_hash 0", RootHash{Epoch: epochPtr(0)}},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			cmd := ParseLine(c.input)
			dir, ok := cmd.(Directory)
			require.True(t, ok, "expected Directory, got %#v", cmd)
			assert.Equal(t, c.expect, dir.Cmd)
		})
	}
}

func TestParseInvalidArgs(t *testing.T) {
	cases := []struct {
		input string
		cmd   string
	}{
		{"publish alice", "publish"},
		{"publish", "publish"},
		{"lookup", "lookup"},
		{"history", "history"},
		{"audit 5", "audit"},
		{"audit 5 ten", "audit"},
		{"audit five 10", "audit"},
		{"audit -1 10", "audit"},
		{"audit +5 10", "audit"},
		{"audit 5 18446744073709551616", "audit"},
		{"AUDIT", "audit"},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			cmd := ParseLine(c.input)
			invalid, ok := cmd.(InvalidArgs)
			require.True(t, ok, "expected InvalidArgs, got %#v", cmd)
			assert.Contains(t, invalid.Message, c.cmd)
			assert.Contains(t, invalid.Message, "help")
		})
	}
}

func TestParseUnknown(t *testing.T) {
	cases := []string{
		"",
		"publis alice x",
		"quit",
		"exit2",
		" exit",
		"roothash 1",
		"ls -la",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, Unknown{Text: input}, ParseLine(input))
		})
	}
}

func TestParseUnknownKeepsNormalizedText(t *testing.T) {
	assert.Equal(t, Unknown{Text: "Frobnicate A"}, ParseLine("Frobnicate A\r\n"))
	assert.Equal(t, Unknown{Text: "frobnicate\r"}, ParseLine("frobnicate\r"))
}

// An unparsable epoch degrades to the latest epoch instead of rejecting,
// while audit rejects the same input. Both behaviors are intentional.
func TestParseRootHashUnparsableEpochFallsBack(t *testing.T) {
	for _, input := range []string{"root abc", "root -1", "root +3", "root 18446744073709551616", "root_hash  7"} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, Directory{Cmd: RootHash{}}, ParseLine(input))
		})
	}

	_, ok := ParseLine("audit abc 1").(InvalidArgs)
	assert.True(t, ok)
}

func TestParseLineEndings(t *testing.T) {
	for _, suffix := range []string{"", "\n", "\r\n"} {
		assert.Equal(t, Directory{Cmd: Publish{User: "alice", Value: "secret"}}, ParseLine("publish alice secret"+suffix))
		assert.Equal(t, Directory{Cmd: Audit{Start: 1, End: 2}}, ParseLine("audit 1 2"+suffix))
		assert.Equal(t, Exit{}, ParseLine("exit"+suffix))
	}
}

func TestParseNormalizesBuffer(t *testing.T) {
	line := "lookup alice\r\n"
	cmd := Parse(&line)
	assert.Equal(t, "lookup alice", line)
	assert.Equal(t, Directory{Cmd: Lookup{User: "alice"}}, cmd)
}

func TestParseConsecutiveSpacesShiftArguments(t *testing.T) {
	assert.Equal(t, Directory{Cmd: Publish{User: "", Value: "alice"}}, ParseLine("publish  alice x"))
	assert.Equal(t, Directory{Cmd: Lookup{User: ""}}, ParseLine("lookup  alice"))

	_, ok := ParseLine("audit  1 2").(InvalidArgs)
	assert.True(t, ok)
}

func TestTrimNewline(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{"abc", "abc"},
		{"abc\n", "abc"},
		{"abc\r\n", "abc"},
		{"abc\r", "abc\r"},
		{"abc\n\n", "abc\n"},
		{"abc\r\n\r\n", "abc\r\n"},
		{"abc ", "abc "},
		{"\n", ""},
		{"", ""},
	}

	for _, c := range cases {
		line := c.input
		TrimNewline(&line)
		assert.Equal(t, c.expect, line, "input %q", c.input)
	}
}

func TestTrimNewlineIdempotent(t *testing.T) {
	for _, input := range []string{"abc", "abc\n", "abc\r\n", "abc\r", "  x  "} {
		once := input
		TrimNewline(&once)
		normalized := once
		TrimNewline(&normalized)
		assert.Equal(t, once, normalized, "input %q", input)
	}
}

func TestTokenize(t *testing.T) {
	assert.Nil(t, tokenize(""))
	assert.Equal(t, []string{"a"}, tokenize("a"))
	assert.Equal(t, []string{"a", "", "b"}, tokenize("a  b"))
	assert.Equal(t, []string{"a", ""}, tokenize("a "))
	assert.Equal(t, []string{"a\tb"}, tokenize("a\tb"))
}

func TestParseConcurrent(t *testing.T) {
	inputs := []string{"publish alice v1\n", "audit 1 2", "root 3", "nope", "lookup bob\r\n"}
	expects := []Command{
		Directory{Cmd: Publish{User: "alice", Value: "v1"}},
		Directory{Cmd: Audit{Start: 1, End: 2}},
		Directory{Cmd: RootHash{Epoch: epochPtr(3)}},
		Unknown{Text: "nope"},
		Directory{Cmd: Lookup{User: "bob"}},
	}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx := i % len(inputs)
			assert.Equal(t, expects[idx], ParseLine(inputs[idx]))
		}(i)
	}
	wg.Wait()
}

func TestCommandKind(t *testing.T) {
	assert.Equal(t, "exit", ParseLine("x").Kind())
	assert.Equal(t, "publish", ParseLine("publish a b").Kind())
	assert.Equal(t, "root_hash", ParseLine("root").Kind())
	assert.Equal(t, "invalid_args", ParseLine("lookup").Kind())
	assert.Equal(t, "unknown", ParseLine("what").Kind())
}
