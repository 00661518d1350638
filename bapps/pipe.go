package bapps

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dirwatcher/dirwatcher/framework"
	"github.com/dirwatcher/dirwatcher/states"
)

// pipeApp feeds every line of a non-interactive input to the state.
// Unlike olc it keeps going after a failed command.
type pipeApp struct {
	input io.Reader
}

func NewPipeApp(input io.Reader) BApp {
	return &pipeApp{input: input}
}

func (a *pipeApp) Run(start framework.State) {
	app := start
	defer func() { app.Close() }()
	scanner := bufio.NewScanner(a.input)
	for scanner.Scan() {
		var err error
		app, err = app.Process(scanner.Text())
		if errors.Is(err, states.ExitErr) {
			return
		}
		if err != nil {
			fmt.Println(err.Error())
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Println("failed to read input:", err.Error())
	}
}
