package states

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/dirwatcher/dirwatcher/configs"
	"github.com/dirwatcher/dirwatcher/directory"
	"github.com/dirwatcher/dirwatcher/framework"
	"github.com/dirwatcher/dirwatcher/states/autocomplete"
)

var errColor = color.New(color.FgRed)

// ShellState parses each input line and dispatches it to the directory.
type ShellState struct {
	*framework.CmdState

	dir    *directory.Directory
	config *configs.Config
	logger *zap.Logger
	// out is nil for the current os.Stdout, which the pager may swap between commands.
	out    io.Writer
	format framework.Format

	session string
	started time.Time

	processed atomic.Int64
	failed    atomic.Int64
	rejected  atomic.Int64
}

func (s *ShellState) writer() io.Writer {
	if s.out != nil {
		return s.out
	}
	return os.Stdout
}

// Process is the main entry for processing command.
func (s *ShellState) Process(line string) (framework.State, error) {
	cmd := framework.Parse(&line)
	logger := s.logger.With(zap.String("session", s.session), zap.String("kind", cmd.Kind()))
	logger.Debug("command parsed", zap.String("line", line))

	stop := s.WatchInterrupt()
	defer stop()
	ctx, cancel := s.Ctx()
	defer cancel()

	w := s.writer()
	switch cmd := cmd.(type) {
	case framework.Exit:
		logger.Info("exit requested")
		return newExitState(), ExitErr
	case framework.Help:
		printHelp(w, framework.Vocabulary)
	case framework.Flush:
		if err := s.dir.Flush(ctx); err != nil {
			return s.fail(logger, err)
		}
		fmt.Fprintln(w, "Directory flushed")
	case framework.Info:
		info, err := s.renderInfo(ctx)
		if err != nil {
			return s.fail(logger, err)
		}
		fmt.Fprintln(w, info)
	case framework.Directory:
		rs, err := s.dir.Execute(ctx, cmd.Cmd)
		if err != nil {
			return s.fail(logger, err)
		}
		fmt.Fprintln(w, framework.NewPresetResultSet(rs, s.format))
	case framework.InvalidArgs:
		s.rejected.Inc()
		logger.Info("invalid arguments", zap.String("message", cmd.Message))
		fmt.Fprintln(w, errColor.Sprint(cmd.Message))
		return s, nil
	case framework.Unknown:
		if cmd.Text == "" {
			return s, nil
		}
		s.rejected.Inc()
		logger.Info("unknown command", zap.String("text", cmd.Text))
		fmt.Fprintln(w, errColor.Sprintf("Unknown command: %s", cmd.Text))
		return s, nil
	default:
		return s, errors.Newf("unexpected command %T", cmd)
	}

	s.processed.Inc()
	logger.Debug("command processed")
	return s, nil
}

func (s *ShellState) fail(logger *zap.Logger, err error) (framework.State, error) {
	s.failed.Inc()
	if errors.Is(err, context.Canceled) {
		logger.Warn("command interrupted")
		return s, errors.New("command interrupted")
	}
	logger.Warn("command failed", zap.Error(err))
	return s, err
}

// Suggestions returns command and argument suggestions for input.
func (s *ShellState) Suggestions(input string) map[string]string {
	return autocomplete.SuggestInputCommands(input, framework.Vocabulary)
}

// Close flushes the logger.
func (s *ShellState) Close() {
	_ = s.logger.Sync()
}
