package bapps

import (
	"os"
	"os/exec"

	"github.com/c-bata/go-prompt"
)

// bInputParser wraps prompt.PosixParser to change TearDown behavior.
type bInputParser struct {
	*prompt.PosixParser
}

// TearDown should be called after stopping input
func (t *bInputParser) TearDown() error {
	err := t.PosixParser.TearDown()
	RestoreTerminal()
	return err
}

func NewBInputParser() *bInputParser {
	return &bInputParser{
		PosixParser: prompt.NewStandardInputParser(),
	}
}

// RestoreTerminal turns raw mode off, go-prompt may leave the tty without echo on exit.
func RestoreTerminal() {
	rawModeOff := exec.Command("/bin/stty", "-raw", "echo")
	rawModeOff.Stdin = os.Stdin
	_ = rawModeOff.Run()
}
