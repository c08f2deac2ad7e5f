package yarsa_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"net/http"
	"testing"
	"testing/iotest"

	"github.com/YaCodeDev/GoYaToyRSA/yarsa"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hmacBlock(seed []byte, counter uint64) []byte {
	var ctr [8]byte

	binary.BigEndian.PutUint64(ctr[:], counter)

	mac := hmac.New(sha256.New, seed)
	mac.Write(ctr[:])

	return mac.Sum(nil)
}

func TestDeterministicReader_MatchesCounterBlocks(t *testing.T) {
	t.Parallel()

	seed := []byte("prime picker")

	want := append(hmacBlock(seed, 0), hmacBlock(seed, 1)...)
	want = append(want, hmacBlock(seed, 2)[:9]...)

	got := make([]byte, len(want))

	n, err := yarsa.NewDeterministicReader(seed).Read(got)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stream mismatch (-want +got):\n%s", diff)
	}
}

func TestDeterministicReader_ChunkingDoesNotShiftStream(t *testing.T) {
	t.Parallel()

	seed := []byte("chunked")

	whole := make([]byte, 300)
	_, err := yarsa.NewDeterministicReader(seed).Read(whole)
	require.NoError(t, err)

	r := yarsa.NewDeterministicReader(seed)
	pieces := make([]byte, 0, len(whole))

	for _, size := range []int{5, 0, 27, 32, 1, 64, 171} {
		buf := make([]byte, size)
		_, err := r.Read(buf)
		require.NoError(t, err)

		pieces = append(pieces, buf...)
	}

	assert.Empty(t, cmp.Diff(whole, pieces))
}

func TestDeterministicReader_IgnoresLaterSeedMutation(t *testing.T) {
	t.Parallel()

	seed := []byte("exponent")
	r := yarsa.NewDeterministicReader(seed)

	seed[0] = 'X'

	got := make([]byte, 32)
	_, _ = r.Read(got)

	assert.Equal(t, hmacBlock([]byte("exponent"), 0), got)
	assert.NotEqual(t, hmacBlock(seed, 0), got)
}

func TestRandomIndex_InRangeAndReproducible(t *testing.T) {
	t.Parallel()

	a := yarsa.NewDeterministicReader([]byte("primes"))
	b := yarsa.NewDeterministicReader([]byte("primes"))

	hits := make([]int, 6)

	for range 300 {
		i, err := yarsa.RandomIndex(a, len(hits))
		require.Nil(t, err)

		j, err := yarsa.RandomIndex(b, len(hits))
		require.Nil(t, err)

		require.Equal(t, i, j)
		require.True(t, i >= 0 && i < len(hits), "index %d", i)

		hits[i]++
	}

	for i, h := range hits {
		assert.Positive(t, h, "index %d never drawn", i)
	}
}

func TestRandomIndex_Failures(t *testing.T) {
	t.Parallel()

	_, err := yarsa.RandomIndex(nil, 0)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code())

	boom := errors.New("no entropy")

	_, err = yarsa.RandomIndex(iotest.ErrReader(boom), 4)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, http.StatusInternalServerError, err.Code())

	i, err := yarsa.RandomIndex(nil, 1)
	require.Nil(t, err)
	assert.Equal(t, 0, i)
}
