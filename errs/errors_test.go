package errs

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrKind_String(t *testing.T) {
	tests := []struct {
		kind ErrKind
		want string
	}{
		{ErrKindNotFound, "not_found"},
		{ErrKindConnectionFailed, "connection_failed"},
		{ErrKindTimeout, "timeout"},
		{ErrKindRequestFailed, "request_failed"},
		{ErrKindInvalidInput, "invalid_input"},
		{ErrKindPermissionDenied, "permission_denied"},
		{ErrKindUnknown, "unknown"},
		{ErrKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestBackend_CarriesStatusReasonBody(t *testing.T) {
	err := Backend(ErrKindNotFound, "no such bucket", 404, "NoSuchBucket", "<Error/>", nil)

	assert.Equal(t, 404, err.Status)
	assert.Equal(t, "NoSuchBucket", err.Reason)
	assert.Equal(t, "<Error/>", err.Body)
	assert.True(t, IsBackend(err))
	assert.Equal(t, 404, StatusOf(err))
	assert.Contains(t, err.Error(), "backend returned 404 NoSuchBucket")
}

func TestWrap_IsTransportVariant(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrKindConnectionFailed, "ping failed", cause)

	assert.False(t, IsBackend(err))
	assert.Equal(t, 0, StatusOf(err))
	assert.True(t, IsConnectionFailed(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUnwrap_TraversesCauseChain(t *testing.T) {
	err := Wrap(ErrKindInvalidInput, "cannot open source file", fs.ErrNotExist)

	require.True(t, errors.Is(err, fs.ErrNotExist))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, ErrKindInvalidInput, e.Kind)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", New(ErrKindNotFound, "x"), IsNotFound},
		{"timeout", New(ErrKindTimeout, "x"), IsTimeout},
		{"connection failed", New(ErrKindConnectionFailed, "x"), IsConnectionFailed},
		{"request failed", New(ErrKindRequestFailed, "x"), IsRequestFailed},
		{"invalid input", New(ErrKindInvalidInput, "x"), IsInvalidInput},
		{"permission denied", New(ErrKindPermissionDenied, "x"), IsPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
			assert.False(t, tt.pred(errors.New("plain")))
		})
	}
}

func TestPredicates_WrappedDeep(t *testing.T) {
	inner := New(ErrKindPermissionDenied, "access denied")
	outer := errors.Join(errors.New("op failed"), inner)

	assert.True(t, IsPermissionDenied(outer))
}
