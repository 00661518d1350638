package states

import (
	"context"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dirwatcher/dirwatcher/common"
)

// renderInfo reports the running instance, backend and directory progress.
func (s *ShellState) renderInfo(ctx context.Context) (string, error) {
	stats, err := s.dir.Stats(ctx)
	if err != nil {
		return "", err
	}

	t := table.NewWriter()
	t.SetTitle("dirwatcher info")
	t.AppendRows([]table.Row{
		{"Version", common.Version.String()},
		{"Session", s.session},
		{"Backend", s.config.Backend},
		{"Endpoints", strings.Join(s.config.EtcdEndpoints, ",")},
		{"Root Path", s.config.RootPath},
		{"Latest Epoch", stats.Epoch},
		{"Root Hash", stats.Root.Hex()},
		{"Users", stats.Users},
		{"Uptime", time.Since(s.started).Truncate(time.Second).String()},
		{"Processed", s.processed.Load()},
		{"Failed", s.failed.Load()},
		{"Rejected", s.rejected.Load()},
	})
	return t.Render(), nil
}
