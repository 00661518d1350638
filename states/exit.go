package states

import "github.com/dirwatcher/dirwatcher/framework"

// ExitErr is the error indicates user needs to exit application.
var ExitErr = exitErr{}

// exitErr internal err type for comparing.
type exitErr struct{}

// Error implements error.
func (e exitErr) Error() string {
	return "exited"
}

// exitState simple exit state.
type exitState struct {
	*framework.CmdState
}

func newExitState() *exitState {
	return &exitState{CmdState: framework.NewCmdState("Exit")}
}

// Process keeps reporting exit, nothing runs after exit.
func (s *exitState) Process(string) (framework.State, error) {
	return s, ExitErr
}

// IsEnding returns true for exit State
func (s *exitState) IsEnding() bool { return true }
