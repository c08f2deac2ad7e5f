package yarsa

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaToyRSA/yaencoding"
	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/YaCodeDev/GoYaToyRSA/yamath"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Ciphertext is an ordered block sequence plus the framing needed to restore
// the plaintext byte for byte. BlockSize and Length are not secret.
type Ciphertext struct {
	Blocks    []*big.Int
	BlockSize int
	Length    int
}

// ciphertextWire is the MessagePack layout of a Ciphertext.
type ciphertextWire struct {
	BlockSize int      `msgpack:"block_size"`
	Length    int      `msgpack:"length"`
	Blocks    [][]byte `msgpack:"blocks"`
}

// BlockWidth is the plaintext width of block i: BlockSize for every block but
// the last, which holds whatever remains.
func (c *Ciphertext) BlockWidth(i int) int {
	if i == len(c.Blocks)-1 {
		if rest := c.Length - i*c.BlockSize; rest > 0 {
			return rest
		}
	}

	return c.BlockSize
}

// Validate checks the framing and, when n is non-nil, that BlockSize fits
// below n and every block lies in [0, n). Length must fill exactly
// len(Blocks) slots of BlockSize bytes, the last one possibly short.
func (c *Ciphertext) Validate(n *big.Int) yaerrors.Error {
	if c == nil {
		return yaerrors.FromError(http.StatusBadRequest, ErrMalformedCiphertext, "[RSA] nil ciphertext")
	}

	if c.BlockSize < 1 || c.Length < 0 {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrMalformedCiphertext,
			fmt.Sprintf("[RSA] block size %d, length %d", c.BlockSize, c.Length),
		)
	}

	if n != nil {
		if maxSize := yamath.ByteLen(n) - 1; c.BlockSize > maxSize {
			return yaerrors.FromError(
				http.StatusBadRequest,
				ErrMalformedCiphertext,
				fmt.Sprintf("[RSA] block size %d exceeds %d for n = %s", c.BlockSize, maxSize, n),
			)
		}
	}

	want := c.Length / c.BlockSize
	if c.Length%c.BlockSize != 0 {
		want++
	}

	if len(c.Blocks) != want {
		return yaerrors.FromError(
			http.StatusBadRequest,
			ErrMalformedCiphertext,
			fmt.Sprintf("[RSA] %d blocks, framing expects %d", len(c.Blocks), want),
		)
	}

	for i, block := range c.Blocks {
		if block == nil || block.Sign() < 0 || (n != nil && block.Cmp(n) >= 0) {
			return yaerrors.FromError(
				http.StatusBadRequest,
				ErrMalformedCiphertext,
				fmt.Sprintf("[RSA] block %d outside [0, n)", i),
			)
		}
	}

	return nil
}

// Strings renders the blocks as decimal strings.
func (c *Ciphertext) Strings() []string {
	out := make([]string, len(c.Blocks))

	for i, block := range c.Blocks {
		out[i] = block.String()
	}

	return out
}

// Encode serializes the ciphertext as MessagePack with big-endian blocks.
func (c *Ciphertext) Encode() ([]byte, yaerrors.Error) {
	if err := c.Validate(nil); err != nil {
		return nil, err.Wrap("[RSA] encode ciphertext")
	}

	wire := ciphertextWire{
		BlockSize: c.BlockSize,
		Length:    c.Length,
		Blocks:    make([][]byte, len(c.Blocks)),
	}

	for i, block := range c.Blocks {
		wire.Blocks[i] = block.Bytes()
	}

	data, err := yaencoding.EncodeMessagePack(wire)
	if err != nil {
		return nil, err.Wrap("[RSA] encode ciphertext")
	}

	return data, nil
}

// DecodeCiphertext parses the output of Ciphertext.Encode.
func DecodeCiphertext(data []byte) (*Ciphertext, yaerrors.Error) {
	wire, err := yaencoding.DecodeMessagePack[ciphertextWire](data)
	if err != nil {
		return nil, err.Wrap("[RSA] decode ciphertext")
	}

	ct := &Ciphertext{
		BlockSize: wire.BlockSize,
		Length:    wire.Length,
		Blocks:    make([]*big.Int, len(wire.Blocks)),
	}

	for i, block := range wire.Blocks {
		ct.Blocks[i] = new(big.Int).SetBytes(block)
	}

	if err := ct.Validate(nil); err != nil {
		return nil, err.Wrap("[RSA] decode ciphertext")
	}

	return ct, nil
}

// DecodeText turns decrypted bytes into a string, replacing ill-formed UTF-8
// with U+FFFD instead of failing. Compare bytes, not text, when exact
// fidelity matters.
func DecodeText(b []byte) string {
	text, _, err := transform.Bytes(runes.ReplaceIllFormed(), b)
	if err != nil {
		return string(b)
	}

	return string(text)
}
