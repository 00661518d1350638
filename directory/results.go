package directory

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dirwatcher/dirwatcher/framework"
	"github.com/dirwatcher/dirwatcher/models"
)

// PublishResult is returned by a publish command.
type PublishResult struct {
	Proof *models.LookupProof
}

func (rs *PublishResult) PrintAs(format framework.Format) string {
	s := rs.Proof.State
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Entities())
	case framework.FormatPlain:
		return fmt.Sprintf("%s %d %d %s", s.User, s.Version, s.Epoch, rs.Proof.Root.Hex())
	case framework.FormatTable:
		return renderTable("Publish", table.Row{"User", "Version", "Epoch", "Root Hash"},
			table.Row{s.User, s.Version, s.Epoch, rs.Proof.Root.Hex()})
	default:
		return fmt.Sprintf("Published version %d for user %s at epoch %d\nRoot hash: %s", s.Version, s.User, s.Epoch, rs.Proof.Root.Hex())
	}
}

func (rs *PublishResult) Entities() any {
	return rs.Proof
}

// LookupResult is returned by a lookup command.
type LookupResult struct {
	Proof *models.LookupProof
}

func (rs *LookupResult) PrintAs(format framework.Format) string {
	s := rs.Proof.State
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Entities())
	case framework.FormatPlain:
		return fmt.Sprintf("%s %s %d %d", s.User, s.Value, s.Version, s.Epoch)
	case framework.FormatTable:
		return renderTable("Lookup", table.Row{"User", "Value", "Version", "Epoch", "Commitment", "Root Hash"},
			table.Row{s.User, s.Value, s.Version, s.Epoch, s.Commitment, rs.Proof.Root.Hex()})
	default:
		sb := &strings.Builder{}
		fmt.Fprintf(sb, "User: %s\n", s.User)
		fmt.Fprintf(sb, "Value: %s\n", s.Value)
		fmt.Fprintf(sb, "Version: %d, published at epoch %d\n", s.Version, s.Epoch)
		fmt.Fprintf(sb, "Commitment: %s\n", s.Commitment)
		fmt.Fprintf(sb, "Resolved at epoch %d, root hash: %s", rs.Proof.Root.Epoch, rs.Proof.Root.Hex())
		return sb.String()
	}
}

func (rs *LookupResult) Entities() any {
	return rs.Proof
}

// HistoryResult is returned by a history command.
type HistoryResult struct {
	Proof *models.HistoryProof
}

func (rs *HistoryResult) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Entities())
	case framework.FormatPlain:
		sb := &strings.Builder{}
		for _, entry := range rs.Proof.Entries {
			fmt.Fprintf(sb, "%d %d %s\n", entry.State.Version, entry.State.Epoch, entry.State.Value)
		}
		return strings.TrimSuffix(sb.String(), "\n")
	default:
		rows := make([]table.Row, 0, len(rs.Proof.Entries))
		for _, entry := range rs.Proof.Entries {
			rows = append(rows, table.Row{entry.State.Version, entry.State.Epoch, entry.State.Value, entry.State.Commitment, entry.Root.Hex()})
		}
		return renderTable(fmt.Sprintf("Key history of %s", rs.Proof.User),
			table.Row{"Version", "Epoch", "Value", "Commitment", "Root Hash"}, rows...)
	}
}

func (rs *HistoryResult) Entities() any {
	return rs.Proof
}

// AuditResult is returned by an audit command.
type AuditResult struct {
	Proof    *models.AuditProof
	Verified bool
}

func (rs *AuditResult) PrintAs(format framework.Format) string {
	p := rs.Proof
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Entities())
	case framework.FormatPlain:
		return fmt.Sprintf("%d %s %d %s %t", p.Start.Epoch, p.Start.Hex(), p.End.Epoch, p.End.Hex(), rs.Verified)
	case framework.FormatTable:
		rows := make([]table.Row, 0, len(p.Commitments))
		for i, commit := range p.Commitments {
			rows = append(rows, table.Row{p.Start.Epoch + uint64(i) + 1, commit})
		}
		return renderTable(fmt.Sprintf("Audit %d -> %d, verified: %t", p.Start.Epoch, p.End.Epoch, rs.Verified),
			table.Row{"Epoch", "Commitment"}, rows...)
	default:
		sb := &strings.Builder{}
		fmt.Fprintf(sb, "Audit proof from epoch %d to epoch %d (%d updates)\n", p.Start.Epoch, p.End.Epoch, len(p.Commitments))
		fmt.Fprintf(sb, "Start root: %s\n", p.Start.Hex())
		fmt.Fprintf(sb, "End root:   %s\n", p.End.Hex())
		fmt.Fprintf(sb, "Verified: %t", rs.Verified)
		return sb.String()
	}
}

func (rs *AuditResult) Entities() any {
	return struct {
		*models.AuditProof
		Verified bool `json:"verified"`
	}{rs.Proof, rs.Verified}
}

// RootHashResult is returned by a root hash command.
type RootHashResult struct {
	Root   models.EpochHash
	Latest bool
}

func (rs *RootHashResult) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Entities())
	case framework.FormatPlain:
		return rs.Root.Hex()
	case framework.FormatTable:
		return renderTable("Root Hash", table.Row{"Epoch", "Root Hash"}, table.Row{rs.Root.Epoch, rs.Root.Hex()})
	default:
		label := ""
		if rs.Latest {
			label = " (latest)"
		}
		return fmt.Sprintf("Root hash at epoch %d%s: %s", rs.Root.Epoch, label, rs.Root.Hex())
	}
}

func (rs *RootHashResult) Entities() any {
	return rs.Root
}

func renderTable(title string, header table.Row, rows ...table.Row) string {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(header)
	t.AppendRows(rows)
	return t.Render()
}
