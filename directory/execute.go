package directory

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/dirwatcher/dirwatcher/framework"
)

// Execute applies a parsed directory command and returns its result set.
func (d *Directory) Execute(ctx context.Context, cmd framework.DirectoryCommand) (framework.ResultSet, error) {
	switch cmd := cmd.(type) {
	case framework.Publish:
		proof, err := d.Publish(ctx, cmd.User, cmd.Value)
		if err != nil {
			return nil, err
		}
		return &PublishResult{Proof: proof}, nil
	case framework.Lookup:
		proof, err := d.Lookup(ctx, cmd.User)
		if err != nil {
			return nil, err
		}
		return &LookupResult{Proof: proof}, nil
	case framework.KeyHistory:
		proof, err := d.KeyHistory(ctx, cmd.User)
		if err != nil {
			return nil, err
		}
		return &HistoryResult{Proof: proof}, nil
	case framework.Audit:
		proof, err := d.Audit(ctx, cmd.Start, cmd.End)
		if err != nil {
			return nil, err
		}
		return &AuditResult{Proof: proof, Verified: VerifyAudit(proof) == nil}, nil
	case framework.RootHash:
		root, err := d.RootHash(ctx, cmd.Epoch)
		if err != nil {
			return nil, err
		}
		return &RootHashResult{Root: root, Latest: cmd.Epoch == nil}, nil
	default:
		return nil, errors.Newf("unsupported directory command %T", cmd)
	}
}
