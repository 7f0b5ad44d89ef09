package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeEmptyDataset, "dataset %s has no records", "local.json")

	assert.Equal(t, ErrCodeEmptyDataset, err.Code)
	assert.Equal(t, "dataset local.json has no records", err.Message)
	assert.Equal(t, "EMPTY_DATASET: dataset local.json has no records", err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeLoadFailure, cause, "fetch dataset")

	assert.Equal(t, ErrCodeLoadFailure, err.Code)
	assert.Same(t, cause, err.Cause)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDegenerateDomain, "test"),
			code:     ErrCodeDegenerateDomain,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDegenerateDomain, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeLoadFailure, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeLoadFailure,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("build: %w", New(ErrCodeEmptyDataset, "inner")),
			code:     ErrCodeEmptyDataset,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Is(tt.err, tt.code))
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidPalette, "test"), ErrCodeInvalidPalette},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetCode(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
		{
			"wrapped cause",
			Wrap(ErrCodeLoadFailure, New(ErrCodeNetwork, "status 503"), "fetch dataset"),
			"fetch dataset: status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err))
		})
	}
}

func TestAborts(t *testing.T) {
	for _, code := range []Code{ErrCodeLoadFailure, ErrCodeEmptyDataset, ErrCodeDegenerateDomain} {
		assert.True(t, Aborts(New(code, "x")), code)
	}
	assert.False(t, Aborts(New(ErrCodeInvalidFormat, "x")))
	assert.False(t, Aborts(errors.New("plain")))
}
