package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("settingsdeck.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "settingsdeck.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "settingsdeck.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("groups[0].items[2].key", "duplicate key", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "groups[0].items[2].key", validationErr.Field)
	require.Contains(t, validationErr.Error(), "duplicate key")
}

func TestPersistenceErrorIncludesOperationAndKey(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("disk full")
	err := NewPersistenceError("save", "config.json", underlying)

	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	require.Equal(t, "save", persistErr.Op)
	require.Equal(t, "config.json", persistErr.Key)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "persistence error: save config.json: disk full", err.Error())
}

func TestUnknownKindErrorMessage(t *testing.T) {
	t.Parallel()

	err := &UnknownKindError{Key: "x", Kind: "slider"}
	require.Equal(t, `unknown item kind "slider" for key "x"`, err.Error())
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var persistErr *PersistenceError
	require.Empty(t, parseErr.Error())
	require.Nil(t, persistErr.Unwrap())
}
