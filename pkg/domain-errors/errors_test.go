package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeNotFound, "certificate not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("matches code buried in chain", func(t *testing.T) {
		inner := New(CodeConflict, "issuance in progress")
		outer := Wrap(inner, CodeInternal, "issue certificate")
		assert.True(t, HasCode(outer, CodeConflict))
		assert.True(t, HasCode(outer, CodeInternal))
	})

	t.Run("uncoded error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, Wrap(nil, CodeInternal, "should vanish"))
	})

	t.Run("preserves cause for errors.Is", func(t *testing.T) {
		cause := errors.New("store closed")
		err := Wrap(fmt.Errorf("saving: %w", cause), CodeInternal, "failed to save")
		assert.ErrorIs(t, err, cause)
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad title")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("uncoded")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "bad title", MessageOf(New(CodeValidation, "bad title")))
	assert.Equal(t, "uncoded", MessageOf(errors.New("uncoded")))
}
