package yarsa

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
)

// DeterministicReader is a reproducible entropy source: block i of the stream
// is HMAC-SHA256(seed, bigEndian(i)). Pass it as KeyOpts.Entropy or
// EncryptOpts.Entropy to make key generation and block-size selection repeat
// exactly across runs.
//
// It is not safe for concurrent use; give each goroutine its own reader.
//
// Usage:
//
//	r := yarsa.NewDeterministicReader([]byte("demo seed"))
//	keys, err := yarsa.GenerateKeys(p, q, yarsa.KeyOpts{Entropy: r})
type DeterministicReader struct {
	mac     hash.Hash
	counter uint64
	block   []byte
	pos     int
}

// NewDeterministicReader builds a reader from seed. The seed is consumed by
// the HMAC key schedule immediately, so later changes to the slice have no
// effect on the stream.
func NewDeterministicReader(seed []byte) *DeterministicReader {
	return &DeterministicReader{
		mac: hmac.New(sha256.New, seed),
	}
}

// Read fills p entirely and never fails.
func (r *DeterministicReader) Read(p []byte) (int, error) {
	written := 0

	for written < len(p) {
		if r.pos >= len(r.block) {
			r.next()
		}

		n := copy(p[written:], r.block[r.pos:])
		r.pos += n
		written += n
	}

	return written, nil
}

func (r *DeterministicReader) next() {
	const counterSize = 8

	var ctr [counterSize]byte

	binary.BigEndian.PutUint64(ctr[:], r.counter)

	r.mac.Reset()
	r.mac.Write(ctr[:])

	r.block = r.mac.Sum(r.block[:0])
	r.pos = 0
	r.counter++
}

// entropyOrDefault returns r, or crypto/rand.Reader when r is nil.
func entropyOrDefault(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}

	return r
}

// RandomIndex returns a uniform integer in [0, n) drawn from r
// (crypto/rand.Reader when r is nil).
func RandomIndex(r io.Reader, n int) (int, yaerrors.Error) {
	if n <= 0 {
		return 0, yaerrors.FromString(
			http.StatusBadRequest,
			fmt.Sprintf("[RSA] random index over empty range %d", n),
		)
	}

	v, err := rand.Int(entropyOrDefault(r), big.NewInt(int64(n)))
	if err != nil {
		return 0, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[RSA] failed to read entropy",
		)
	}

	return int(v.Int64()), nil
}
