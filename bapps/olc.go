package bapps

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/dirwatcher/dirwatcher/framework"
	"github.com/dirwatcher/dirwatcher/states"
)

type olcApp struct {
	script string
}

type olcCmd struct {
	cmd   string
	muted bool
}

func NewOlcApp(script string) BApp {
	return &olcApp{
		script: script,
	}
}

// Run executes the script commands in order and stops at the first failure or exit.
func (a *olcApp) Run(start framework.State) {
	app := start
	defer func() { app.Close() }()
	cmds := a.parseScripts(a.script)
	var err error
	for _, cmd := range cmds {
		stdout := os.Stdout
		if cmd.muted {
			// set to /dev/null to discard not wanted output
			os.Stdout, _ = os.Open(os.DevNull)
		}
		app, err = app.Process(cmd.cmd)
		if cmd.muted {
			os.Stdout.Close()
			os.Stdout = stdout
		}
		if errors.Is(err, states.ExitErr) {
			return
		}
		if err != nil {
			fmt.Println(err.Error())
			return
		}
	}
}

func (a *olcApp) parseScripts(script string) []olcCmd {
	parts := strings.Split(script, ",")
	return lo.Map(parts, func(raw string, _ int) olcCmd {
		muted := false
		cmd := strings.TrimSpace(raw)
		// mute cmd using #[command]
		if strings.HasPrefix(cmd, "#") {
			muted = true
			cmd = cmd[1:]
		}
		return olcCmd{
			muted: muted,
			cmd:   cmd,
		}
	})
}
