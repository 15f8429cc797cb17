package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	t.Run("wrapped sentinel matches", func(t *testing.T) {
		err := fmt.Errorf("failed to settle purchase: %w", ErrInsufficientBalance)
		assert.True(t, errors.Is(err, ErrInsufficientBalance))
		assert.False(t, errors.Is(err, ErrAssetNotTradeable))
	})

	t.Run("sentinel with cause matches", func(t *testing.T) {
		cause := errors.New("signature is invalid")
		err := ErrClaimIntegrity.Wrap(cause)
		assert.True(t, errors.Is(err, ErrClaimIntegrity))
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, "claim signature is invalid: signature is invalid", err.Error())
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "plain error", err: errors.New("boom"), expected: KindInternal},
		{name: "not found", err: ErrAssetNotFound, expected: KindNotFound},
		{name: "wrapped conflict", err: fmt.Errorf("x: %w", ErrAlreadyOwner), expected: KindConflict},
		{name: "validation", err: Validationf("price must be positive"), expected: KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "asset not found", MessageOf(fmt.Errorf("lookup: %w", ErrAssetNotFound)))
	assert.Equal(t, "internal error", MessageOf(errors.New("db connection reset")))
}

func TestAssetStatus_Valid(t *testing.T) {
	assert.True(t, AssetStatusActive.Valid())
	assert.True(t, AssetStatusInactive.Valid())
	assert.False(t, AssetStatus("sold").Valid())
}
