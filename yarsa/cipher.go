package yarsa

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
	"github.com/YaCodeDev/GoYaToyRSA/yamath"
)

// minRandomBlockModulusBytes is the smallest modulus (in bytes) for which a
// randomized block size is drawn; smaller moduli always use bytes(n) − 1.
const minRandomBlockModulusBytes = 5

// EncryptOpts tunes EncryptMessage.
//   - BlockSize: explicit chunk width in bytes, 1 ≤ BlockSize < bytes(n).
//   - Entropy: when set (and BlockSize is 0) a random width in
//     [2, bytes(n) − 2] is drawn for moduli of at least 5 bytes.
//   - Logger: receives the chosen block size at debug level.
type EncryptOpts struct {
	BlockSize int
	Entropy   io.Reader
	Logger    yalogger.Logger
}

// EncryptBlock returns m^e mod n. m must already be below n.
func EncryptBlock(m *big.Int, pub PublicKey) *big.Int {
	return new(big.Int).Exp(m, pub.E, pub.N)
}

// DecryptBlock returns c^d mod n.
func DecryptBlock(c, d, n *big.Int) *big.Int {
	return new(big.Int).Exp(c, d, n)
}

// EncryptMessage splits plaintext into fixed-width chunks, reads each chunk as
// a big-endian integer and encrypts it. The block size is picked once for the
// whole message; only the final chunk may be shorter.
//
// Any width up to bytes(n) − 1 keeps every chunk value below
// 256^(bytes(n)−1) ≤ n, so each block decrypts back to the same integer.
func EncryptMessage(
	plaintext []byte,
	pub PublicKey,
	opts EncryptOpts,
) (*Ciphertext, yaerrors.Error) {
	if err := checkPublicKey(pub); err != nil {
		return nil, err.Wrap("[RSA] encrypt message")
	}

	blockSize, err := chooseBlockSize(pub.N, opts)
	if err != nil {
		return nil, err.Wrap("[RSA] encrypt message")
	}

	if opts.Logger != nil {
		opts.Logger.Debugf(
			"Modulus has %d bytes, encrypting %d bytes in %d-byte blocks",
			yamath.ByteLen(pub.N),
			len(plaintext),
			blockSize,
		)
	}

	blocks := make([]*big.Int, 0, (len(plaintext)+blockSize-1)/blockSize)

	for start := 0; start < len(plaintext); start += blockSize {
		end := min(start+blockSize, len(plaintext))

		blocks = append(blocks, EncryptBlock(yamath.FromBytes(plaintext[start:end]), pub))
	}

	return &Ciphertext{
		Blocks:    blocks,
		BlockSize: blockSize,
		Length:    len(plaintext),
	}, nil
}

// EncryptText encrypts the UTF-8 bytes of text.
func EncryptText(text string, pub PublicKey, opts EncryptOpts) (*Ciphertext, yaerrors.Error) {
	return EncryptMessage([]byte(text), pub, opts)
}

// DecryptMessage decrypts every block with d and writes each result back into
// exactly BlockWidth(i) bytes, so chunks that started with zero bytes come
// back unchanged. A block that decrypts to a value wider than its slot (a
// wrong d, for instance) fails with ErrBlockOverflow.
func DecryptMessage(ct *Ciphertext, d, n *big.Int) ([]byte, yaerrors.Error) {
	if d == nil || n == nil || n.Sign() <= 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrMalformedCiphertext,
			"[RSA] decrypt message: missing key material",
		)
	}

	if err := ct.Validate(n); err != nil {
		return nil, err.Wrap("[RSA] decrypt message")
	}

	plain := make([]byte, 0, ct.Length)

	for i, block := range ct.Blocks {
		chunk, err := yamath.ToBytes(DecryptBlock(block, d, n), ct.BlockWidth(i))
		if err != nil {
			if errors.Is(err, yamath.ErrValueTooWide) {
				return nil, yaerrors.FromError(
					http.StatusBadRequest,
					ErrBlockOverflow,
					fmt.Sprintf("[RSA] decrypt message: block %d", i),
				)
			}

			return nil, err.Wrap("[RSA] decrypt message")
		}

		plain = append(plain, chunk...)
	}

	return plain, nil
}

func chooseBlockSize(n *big.Int, opts EncryptOpts) (int, yaerrors.Error) {
	nBytes := yamath.ByteLen(n)
	maxSize := nBytes - 1

	if maxSize < 1 {
		return 0, yaerrors.FromError(
			http.StatusBadRequest,
			ErrModulusTooSmall,
			fmt.Sprintf("[RSA] modulus %s", n),
		)
	}

	switch {
	case opts.BlockSize < 0 || opts.BlockSize > maxSize:
		return 0, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidBlockSize,
			fmt.Sprintf("[RSA] block size %d outside [1, %d]", opts.BlockSize, maxSize),
		)
	case opts.BlockSize > 0:
		return opts.BlockSize, nil
	case opts.Entropy != nil && nBytes >= minRandomBlockModulusBytes:
		const minRandomBlockSize = 2

		// nBytes − 3 values: [2, nBytes − 2].
		offset, err := RandomIndex(opts.Entropy, nBytes-minRandomBlockSize-1)
		if err != nil {
			return 0, err.Wrap("[RSA] random block size")
		}

		return minRandomBlockSize + offset, nil
	default:
		return maxSize, nil
	}
}

func checkPublicKey(pub PublicKey) yaerrors.Error {
	if pub.N == nil || pub.E == nil || pub.N.Sign() <= 0 || pub.E.Sign() <= 0 {
		return yaerrors.FromString(
			http.StatusBadRequest,
			"[RSA] public key needs positive n and e",
		)
	}

	return nil
}
