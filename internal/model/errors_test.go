package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Message(t *testing.T) {
	err := NewNotFound("product", "42")
	assert.Equal(t, "NOT_FOUND: no such product (product=42)", err.Error())

	plain := NewEmptyCart()
	assert.Equal(t, "EMPTY_CART: cart has no lines", plain.Error())
}

func TestKindOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("checkout: %w", NewEmptyCart())
	assert.Equal(t, KindEmptyCart, KindOf(err))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("disk on fire")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("user", "alice")))
	assert.False(t, IsNotFound(NewEmptyCart()))
}

func TestIsRoleConflict_CarriesExistingAdmin(t *testing.T) {
	err := NewRoleConflict("admin")
	assert.True(t, IsRoleConflict(err))
	assert.Equal(t, "admin", err.Subject)
}
