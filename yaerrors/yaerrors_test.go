package yaerrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
)

var errNotPrime = errors.New("value is not prime")

func TestYaErrorFromString_Code(t *testing.T) {
	err := yaerrors.FromString(http.StatusBadRequest, "bad prime")
	if err.Code() != http.StatusBadRequest {
		t.Fatalf("Error code is not 400, got: %v", err.Code())
	}
}

func TestYaErrorFromString_Error(t *testing.T) {
	err := yaerrors.FromString(http.StatusBadRequest, "bad prime")
	if err.Error() != "400 | bad prime" {
		t.Fatalf("Error message is not '400 | bad prime', got: %v", err.Error())
	}
}

func TestYaErrorFromError_Error(t *testing.T) {
	err := yaerrors.FromError(http.StatusBadRequest, errNotPrime, "generate keys")

	want := "400 | generate keys: value is not prime"
	if err.Error() != want {
		t.Fatalf("Error message is not %q, got: %v", want, err.Error())
	}
}

func TestYaError_WrapPrependsTraceback(t *testing.T) {
	err := yaerrors.FromError(http.StatusBadRequest, errNotPrime, "generate keys").
		Wrap("demo")

	want := "400 | demo -> generate keys: value is not prime"
	if err.Error() != want {
		t.Fatalf("Wrapped error message is not %q, got: %v", want, err.Error())
	}
}

func TestYaError_ErrorsIsSeesCause(t *testing.T) {
	kind := errors.New("kind")
	specific := fmt.Errorf("%w: specific", kind)

	err := yaerrors.FromError(http.StatusBadRequest, specific, "op").Wrap("outer")

	if !errors.Is(err, specific) {
		t.Fatalf("errors.Is did not match the specific cause: %v", err)
	}

	if !errors.Is(err, kind) {
		t.Fatalf("errors.Is did not match the parent kind: %v", err)
	}
}

func TestYaErrorUnwrapLastError_Works(t *testing.T) {
	expected := "Wrapped error"

	err := yaerrors.FromError(http.StatusNotFound, yaerrors.ErrTeapot, "Not Found").Wrap(expected)

	if got := err.UnwrapLastError(); got != expected {
		t.Fatalf("Error didn't unwrap correctly:\n got: %v\n want: %v", got, expected)
	}
}

func TestYaErrorUnwrapLastError_NoWrap(t *testing.T) {
	err := yaerrors.FromString(http.StatusNotFound, "plain")

	if got := err.UnwrapLastError(); got != "plain" {
		t.Fatalf("expected %q, got %q", "plain", got)
	}
}
