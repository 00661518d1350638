// Package directory implements an append-only, hash-chained key directory on top of a MetaKV.
//
// Every publish opens a new epoch. The root hash of epoch e is
// H(root(e-1) || e || commitment(e)), so an audit between two epochs only needs
// the commitments published in between to be replayed.
package directory

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/dirwatcher/dirwatcher/models"
	"github.com/dirwatcher/dirwatcher/states/kv"
)

var (
	// ErrUserNotFound is returned when a user has never published.
	ErrUserNotFound = errors.New("user not found")
	// ErrEpochNotFound is returned for an epoch beyond the latest one.
	ErrEpochNotFound = errors.New("epoch not found")
	// ErrInvalidEpochRange is returned by Audit when start is not before end.
	ErrInvalidEpochRange = errors.New("invalid epoch range")
	// ErrAuditVerify is returned when an audit proof does not replay to its end root.
	ErrAuditVerify = errors.New("audit proof verification failed")
)

const (
	epochKey     = "epoch"
	valuesPrefix = "values/"
	rootsPrefix  = "roots/"
	updatePrefix = "updates/"
)

// Directory serves publish, lookup, history, audit and root hash requests.
// Writes are serialized, reads go straight to the kv.
type Directory struct {
	kv  kv.MetaKV
	mut sync.Mutex
}

// New returns a Directory persisting into the provided kv.
func New(metaKV kv.MetaKV) *Directory {
	return &Directory{kv: metaKV}
}

// Stats summarizes the directory for the info command.
type Stats struct {
	Epoch uint64
	Users int
	Root  models.EpochHash
}

// userKey hex encodes the user so any input, including "" or names with "/", maps to one path segment.
func userKey(user string) string {
	return "u" + hex.EncodeToString([]byte(user))
}

func valuePrefix(user string) string {
	return valuesPrefix + userKey(user) + "/"
}

func valueKey(user string, version uint64) string {
	return fmt.Sprintf("%s%020d", valuePrefix(user), version)
}

func rootKey(epoch uint64) string {
	return fmt.Sprintf("%s%020d", rootsPrefix, epoch)
}

func updateKey(epoch uint64) string {
	return fmt.Sprintf("%s%020d", updatePrefix, epoch)
}

// LatestEpoch returns the latest epoch, 0 for an empty directory.
func (d *Directory) LatestEpoch(ctx context.Context) (uint64, error) {
	raw, err := d.kv.Load(ctx, epochKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	epoch, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed epoch value %q", raw)
	}
	return epoch, nil
}

// rootAt returns the root of epoch, which must not exceed the latest epoch.
func (d *Directory) rootAt(ctx context.Context, epoch uint64) ([]byte, error) {
	if epoch == 0 {
		return genesisRoot(), nil
	}
	raw, err := d.kv.Load(ctx, rootKey(epoch))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrEpochNotFound, "epoch %d", epoch)
	}
	if err != nil {
		return nil, err
	}
	return decodeHash(raw)
}

func (d *Directory) states(ctx context.Context, user string) ([]models.ValueState, error) {
	_, values, err := d.kv.LoadWithPrefix(ctx, valuePrefix(user))
	if err != nil {
		return nil, err
	}
	result := make([]models.ValueState, 0, len(values))
	for _, value := range values {
		state := models.ValueState{}
		if err := json.Unmarshal([]byte(value), &state); err != nil {
			return nil, errors.Wrapf(err, "malformed value state of user %s", user)
		}
		result = append(result, state)
	}
	return result, nil
}

// Publish stores value as the next version for user and opens a new epoch.
func (d *Directory) Publish(ctx context.Context, user, value string) (*models.LookupProof, error) {
	d.mut.Lock()
	defer d.mut.Unlock()

	latest, err := d.LatestEpoch(ctx)
	if err != nil {
		return nil, err
	}
	prevRoot, err := d.rootAt(ctx, latest)
	if err != nil {
		return nil, err
	}
	keys, _, err := d.kv.LoadWithPrefix(ctx, valuePrefix(user), kv.WithKeysOnly())
	if err != nil {
		return nil, err
	}

	epoch := latest + 1
	version := uint64(len(keys)) + 1
	commit := commitment(user, value, version)
	root := nextRoot(prevRoot, epoch, commit)

	state := models.ValueState{
		User:       user,
		Value:      value,
		Version:    version,
		Epoch:      epoch,
		Commitment: hex.EncodeToString(commit),
	}
	bs, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal value state")
	}

	err = d.kv.MultiSave(ctx, map[string]string{
		epochKey:                strconv.FormatUint(epoch, 10),
		valueKey(user, version): string(bs),
		rootKey(epoch):          hex.EncodeToString(root),
		updateKey(epoch):        state.Commitment,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to publish for user %s", user)
	}

	return &models.LookupProof{
		State: state,
		Root:  models.EpochHash{Epoch: epoch, Hash: root},
	}, nil
}

// Lookup returns the latest version of user resolved against the latest root.
func (d *Directory) Lookup(ctx context.Context, user string) (*models.LookupProof, error) {
	states, err := d.states(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, errors.Wrapf(ErrUserNotFound, "user %q", user)
	}
	root, err := d.RootHash(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &models.LookupProof{
		State: states[len(states)-1],
		Root:  root,
	}, nil
}

// KeyHistory returns every version of user in publish order.
func (d *Directory) KeyHistory(ctx context.Context, user string) (*models.HistoryProof, error) {
	states, err := d.states(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, errors.Wrapf(ErrUserNotFound, "user %q", user)
	}

	proof := &models.HistoryProof{
		User:    user,
		Entries: make([]models.HistoryEntry, 0, len(states)),
	}
	for _, state := range states {
		root, err := d.rootAt(ctx, state.Epoch)
		if err != nil {
			return nil, err
		}
		proof.Entries = append(proof.Entries, models.HistoryEntry{
			State: state,
			Root:  models.EpochHash{Epoch: state.Epoch, Hash: root},
		})
	}
	return proof, nil
}

// Audit returns the proof that the directory evolved append-only from start to end.
func (d *Directory) Audit(ctx context.Context, start, end uint64) (*models.AuditProof, error) {
	if start >= end {
		return nil, errors.Wrapf(ErrInvalidEpochRange, "start epoch %d must be lower than end epoch %d", start, end)
	}
	latest, err := d.LatestEpoch(ctx)
	if err != nil {
		return nil, err
	}
	if end > latest {
		return nil, errors.Wrapf(ErrEpochNotFound, "end epoch %d is beyond latest epoch %d", end, latest)
	}

	startRoot, err := d.rootAt(ctx, start)
	if err != nil {
		return nil, err
	}
	endRoot, err := d.rootAt(ctx, end)
	if err != nil {
		return nil, err
	}

	commitments := make([]string, 0, end-start)
	for epoch := start + 1; epoch <= end; epoch++ {
		commit, err := d.kv.Load(ctx, updateKey(epoch))
		if err != nil {
			return nil, errors.Wrapf(err, "missing update of epoch %d", epoch)
		}
		commitments = append(commitments, commit)
	}

	return &models.AuditProof{
		Start:       models.EpochHash{Epoch: start, Hash: startRoot},
		End:         models.EpochHash{Epoch: end, Hash: endRoot},
		Commitments: commitments,
	}, nil
}

// RootHash returns the root at epoch, or at the latest epoch when epoch is nil.
func (d *Directory) RootHash(ctx context.Context, epoch *uint64) (models.EpochHash, error) {
	latest, err := d.LatestEpoch(ctx)
	if err != nil {
		return models.EpochHash{}, err
	}
	target := latest
	if epoch != nil {
		target = *epoch
	}
	if target > latest {
		return models.EpochHash{}, errors.Wrapf(ErrEpochNotFound, "epoch %d is beyond latest epoch %d", target, latest)
	}
	root, err := d.rootAt(ctx, target)
	if err != nil {
		return models.EpochHash{}, err
	}
	return models.EpochHash{Epoch: target, Hash: root}, nil
}

// Flush removes every directory entry, the directory restarts from epoch 0.
func (d *Directory) Flush(ctx context.Context) error {
	d.mut.Lock()
	defer d.mut.Unlock()

	return errors.Wrap(d.kv.RemoveWithPrefix(ctx, ""), "failed to flush directory")
}

// Users returns every user that has published, sorted by key order.
func (d *Directory) Users(ctx context.Context) ([]string, error) {
	keys, _, err := d.kv.LoadWithPrefix(ctx, valuesPrefix, kv.WithKeysOnly())
	if err != nil {
		return nil, err
	}
	encoded := lo.Uniq(lo.Map(keys, func(key string, _ int) string {
		return strings.Split(strings.TrimPrefix(key, valuesPrefix), "/")[0]
	}))
	users := make([]string, 0, len(encoded))
	for _, segment := range encoded {
		bs, err := hex.DecodeString(strings.TrimPrefix(segment, "u"))
		if err != nil {
			return nil, errors.Wrapf(err, "malformed user key %s", segment)
		}
		users = append(users, string(bs))
	}
	return users, nil
}

// Stats returns the latest epoch, its root and the number of distinct users.
func (d *Directory) Stats(ctx context.Context) (*Stats, error) {
	root, err := d.RootHash(ctx, nil)
	if err != nil {
		return nil, err
	}
	users, err := d.Users(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Epoch: root.Epoch,
		Users: len(users),
		Root:  root,
	}, nil
}

// VerifyAudit replays the commitments of proof from its start root and checks the end root.
func VerifyAudit(proof *models.AuditProof) error {
	if proof.End.Epoch <= proof.Start.Epoch {
		return errors.Wrapf(ErrInvalidEpochRange, "start epoch %d, end epoch %d", proof.Start.Epoch, proof.End.Epoch)
	}
	if uint64(len(proof.Commitments)) != proof.End.Epoch-proof.Start.Epoch {
		return errors.Wrapf(ErrAuditVerify, "expected %d commitments, got %d", proof.End.Epoch-proof.Start.Epoch, len(proof.Commitments))
	}

	root := proof.Start.Hash
	for i, raw := range proof.Commitments {
		commit, err := decodeHash(raw)
		if err != nil {
			return errors.Wrapf(ErrAuditVerify, "commitment %d: %s", i, err.Error())
		}
		root = nextRoot(root, proof.Start.Epoch+uint64(i)+1, commit)
	}
	if hex.EncodeToString(root) != proof.End.Hex() {
		return errors.Wrapf(ErrAuditVerify, "replayed root %x does not match end root %s", root, proof.End.Hex())
	}
	return nil
}
