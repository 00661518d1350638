package framework

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// State is the interface for application state.
type State interface {
	Ctx() (context.Context, context.CancelFunc)
	Label() string
	Process(cmd string) (State, error)
	Close()
	Suggestions(input string) map[string]string
	IsEnding() bool
}

// CmdState carries the label and interrupt handling shared by all states.
type CmdState struct {
	label  string
	signal <-chan os.Signal
}

// NewCmdState returns a CmdState with provided label.
func NewCmdState(label string) *CmdState {
	return &CmdState{
		label: label,
	}
}

// SetLabel updates label value.
func (s *CmdState) SetLabel(label string) {
	s.label = label
}

// Label returns the display label for current cli.
func (s *CmdState) Label() string {
	return s.label
}

// WatchInterrupt routes SIGINT to the contexts returned by Ctx until the returned func is called.
func (s *CmdState) WatchInterrupt() func() {
	signal.Reset(syscall.SIGINT)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	s.signal = c
	return func() {
		signal.Reset(syscall.SIGINT)
		s.signal = nil
	}
}

// Ctx returns context which bind to sigint handler.
func (s *CmdState) Ctx() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := s.signal
	go func() {
		defer cancel()
		select {
		case <-sig:
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// Suggestions returns nothing by default.
func (s *CmdState) Suggestions(string) map[string]string {
	return map[string]string{}
}

// Close empty method to implement State.
func (s *CmdState) Close() {}

// Check state is ending state.
func (s *CmdState) IsEnding() bool { return false }
