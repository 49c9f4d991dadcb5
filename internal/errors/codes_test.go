package errors

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"invalid input", InvalidInput("bad %s", "level"), CodeInvalidInput},
		{"session", InvalidSession("no exam"), CodeInvalidSessionState},
		{"not found", NotFound("word", 7), CodeNotFound},
		{"wrapped", pkgerrors.Wrap(NotFound("exam", "x"), "failed to load"), CodeNotFound},
		{"plain", pkgerrors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
			assert.True(t, IsCode(tt.err, tt.want))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("word", 42)
	assert.Equal(t, "[NOT_FOUND] word not found: 42", err.Error())
	assert.Equal(t, "word not found: 42", MessageOf(err, "fallback"))
	assert.Equal(t, "fallback", MessageOf(pkgerrors.New("x"), "fallback"))

	cause := pkgerrors.New("disk full")
	wrapped := Internal("failed to save", cause)
	assert.Equal(t, "[INTERNAL] failed to save: disk full", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.False(t, IsCode(nil, CodeInternal))
}
