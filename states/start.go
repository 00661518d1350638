package states

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/dirwatcher/dirwatcher/configs"
	"github.com/dirwatcher/dirwatcher/directory"
	"github.com/dirwatcher/dirwatcher/framework"
	"github.com/dirwatcher/dirwatcher/states/autocomplete"
)

const userSuggestTimeout = time.Millisecond * 500

// Option setup function for ShellState.
type Option func(*ShellState)

// WithOutput redirects command output to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *ShellState) {
		s.out = w
	}
}

// WithLogger sets the logger, zap.NewNop is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(s *ShellState) {
		s.logger = logger
	}
}

// Start returns the shell state serving dir.
func Start(config *configs.Config, dir *directory.Directory, opts ...Option) *ShellState {
	state := &ShellState{
		CmdState: framework.NewCmdState(fmt.Sprintf("Directory(%s)", config.RootPath)),
		dir:      dir,
		config:   config,
		logger:   zap.NewNop(),
		format:   framework.NameFormat(config.GetGlobalOutputFormat()),
		session:  uuid.NewString(),
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(state)
	}

	autocomplete.RegisterValueSuggester("user", autocomplete.ValueSuggestFunc(state.suggestUsers))
	state.logger.Info("shell started", zap.String("session", state.session), zap.String("config", config.String()))
	return state
}

func (s *ShellState) suggestUsers(partial string) []string {
	ctx, cancel := context.WithTimeout(context.Background(), userSuggestTimeout)
	defer cancel()
	users, err := s.dir.Users(ctx)
	if err != nil {
		s.logger.Debug("user suggestion failed", zap.Error(err))
		return nil
	}
	return lo.Filter(users, func(user string, _ int) bool {
		return user != "" && strings.HasPrefix(user, partial)
	})
}
