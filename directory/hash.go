package directory

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"
)

const genesisLabel = "dirwatcher-genesis"

// genesisRoot is the root hash of epoch 0, before anything is published.
func genesisRoot() []byte {
	sum := blake2b.Sum256([]byte(genesisLabel))
	return sum[:]
}

// commitment binds user, value and version. Fields are length prefixed
// so that ("ab", "c") and ("a", "bc") never collide.
func commitment(user, value string, version uint64) []byte {
	buf := make([]byte, 0, 8+len(user)+8+len(value)+8)
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(user)))
	buf = append(buf, user...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(value)))
	buf = append(buf, value...)
	buf = binary.BigEndian.AppendUint64(buf, version)
	sum := blake2b.Sum256(buf)
	return sum[:]
}

// nextRoot chains the commitment published in epoch onto the previous root.
func nextRoot(prev []byte, epoch uint64, commit []byte) []byte {
	buf := make([]byte, 0, len(prev)+8+len(commit))
	buf = append(buf, prev...)
	buf = binary.BigEndian.AppendUint64(buf, epoch)
	buf = append(buf, commit...)
	sum := blake2b.Sum256(buf)
	return sum[:]
}

func decodeHash(s string) ([]byte, error) {
	bs, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed hash %q", s)
	}
	if len(bs) != blake2b.Size256 {
		return nil, errors.Newf("hash %q has length %d, expected %d", s, len(bs), blake2b.Size256)
	}
	return bs, nil
}
