package bapps

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"

	"github.com/dirwatcher/dirwatcher/framework"
	"github.com/dirwatcher/dirwatcher/states"
)

// simpleApp wraps promptui as BApp.
type simpleApp struct{}

func NewSimpleApp() BApp {
	return &simpleApp{}
}

// Run starts dirwatcher with promptui. (disable suggestion and history)
func (a *simpleApp) Run(start framework.State) {
	app := start
	defer func() { app.Close() }()
	for {
		p := promptui.Prompt{
			Label: app.Label(),
		}

		line, err := p.Run()
		// ctrl-c or ctrl-d
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return
		}
		if err != nil {
			continue
		}
		app, err = app.Process(line)
		if errors.Is(err, states.ExitErr) || app.IsEnding() {
			fmt.Println("Bye!")
			return
		}
		if err != nil {
			fmt.Println(err.Error())
		}
	}
}
