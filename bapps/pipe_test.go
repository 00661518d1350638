package bapps

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/dirwatcher/dirwatcher/configs"
	"github.com/dirwatcher/dirwatcher/directory"
	"github.com/dirwatcher/dirwatcher/states"
	"github.com/dirwatcher/dirwatcher/states/kv"
)

func TestPipeApp(t *testing.T) {
	color.NoColor = true
	config := &configs.Config{Backend: configs.BackendMemory, RootPath: "pipe-test"}
	dir := directory.New(kv.NewMemoryKV(config.RootPath))
	out := &bytes.Buffer{}
	start := states.Start(config, dir, states.WithOutput(out))

	input := strings.Join([]string{
		"publish alice k1",
		"lookup nobody",
		"publish alice k2",
		"bogus",
		"exit",
		"publish alice k3",
	}, "\n")
	NewPipeApp(strings.NewReader(input)).Run(start)

	assert.Contains(t, out.String(), "Published version 2 for user alice at epoch 2")
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.NotContains(t, out.String(), "version 3")
}
