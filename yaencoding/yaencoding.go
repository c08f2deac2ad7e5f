// Package yaencoding wraps MessagePack serialization and base64 text
// conversion behind yaerrors.Error so wire formats (the yarsa ciphertext
// envelope, for one) share a single error style.
//
// Example usage:
//
//	type Envelope struct {
//	    BlockSize int      `msgpack:"block_size"`
//	    Blocks    [][]byte `msgpack:"blocks"`
//	}
//
//	data, err := yaencoding.EncodeMessagePack(Envelope{BlockSize: 2})
//	if err != nil {
//	    return err.Wrap("send")
//	}
//
//	text := yaencoding.ToString(data) // printable form for logs or env vars
//
//	back, err := yaencoding.ToBytes(text)
//	env, err := yaencoding.DecodeMessagePack[Envelope](back)
package yaencoding

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMessagePack serializes value using MessagePack.
func EncodeMessagePack(value any) ([]byte, yaerrors.Error) {
	bytes, err := msgpack.Marshal(value)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[ENCODING] failed to marshal %T using message pack format", value),
		)
	}

	return bytes, nil
}

// DecodeMessagePack decodes MessagePack bytes into a new T.
func DecodeMessagePack[T any](bytes []byte) (*T, yaerrors.Error) {
	var res T

	if err := msgpack.Unmarshal(bytes, &res); err != nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			err,
			fmt.Sprintf("[ENCODING] failed to unmarshal message pack into %T", res),
		)
	}

	return &res, nil
}

// ToString converts a byte slice into a base64 string.
func ToString(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ToBytes decodes a base64 string into bytes.
func ToBytes(data string) ([]byte, yaerrors.Error) {
	bytes, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			err,
			"[ENCODING] failed to decode string to bytes",
		)
	}

	return bytes, nil
}
