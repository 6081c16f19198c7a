package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := sheeterr.NotFoundf("character %s not found", "abc").WithMeta("character_id", "abc")

	wrapped := sheeterr.Wrap(base, "loading sheet")

	require.NotNil(t, wrapped)
	assert.Equal(t, sheeterr.CodeNotFound, wrapped.Code)
	assert.Equal(t, "abc", wrapped.Meta["character_id"])
	assert.True(t, sheeterr.IsNotFound(wrapped))
	assert.Equal(t, "loading sheet: character abc not found", wrapped.Error())
}

func TestWrap_ForeignErrorIsUnknown(t *testing.T) {
	cause := stderrors.New("boom")

	wrapped := sheeterr.Wrap(cause, "saving")

	assert.Equal(t, sheeterr.CodeUnknown, sheeterr.GetCode(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, sheeterr.Wrap(nil, "nothing"))
	assert.Nil(t, sheeterr.WrapWithCode(nil, sheeterr.CodeInternal, "nothing"))
}

func TestWrapWithCode_SentinelStillMatches(t *testing.T) {
	sentinel := stderrors.New("attunement limit reached")

	err := fmt.Errorf("outer: %w", sheeterr.WrapWithCode(sentinel, sheeterr.CodeValidation, "cannot attune ring"))

	assert.True(t, sheeterr.IsValidation(err))
	assert.ErrorIs(t, err, sentinel)
}

func TestCodeHelpers(t *testing.T) {
	assert.True(t, sheeterr.IsInvalidArgument(sheeterr.InvalidArgument("bad")))
	assert.True(t, sheeterr.IsAlreadyExists(sheeterr.AlreadyExistsf("id %s", "x")))
	assert.True(t, sheeterr.IsUnavailable(sheeterr.Unavailable("backend not configured")))
	assert.False(t, sheeterr.IsValidation(stderrors.New("plain")))
	assert.Nil(t, sheeterr.GetMeta(stderrors.New("plain")))
}
