// Package session holds the in-process authentication state and owns the
// active cart.
//
// A Session is created once at process start and passed explicitly into
// every core call that needs identity or cart access; there is no ambient
// singleton. It lives exactly as long as the process: nothing is persisted,
// and a fresh launch always starts unauthenticated.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hmtran/storefront/internal/cart"
	"github.com/hmtran/storefront/internal/model"
	"github.com/hmtran/storefront/internal/store"
)

// Identity is the authenticated principal: username plus normalized role.
type Identity struct {
	Username string
	Role     model.Role
}

// TokenGenerator produces session tokens.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens, useful
// for correlating log lines from one process run.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Session tracks who is logged in and their cart. One owner, one logical
// thread of control; not safe for concurrent use.
type Session struct {
	// Token identifies this session in logs. Assigned at creation,
	// never persisted.
	Token string

	user *Identity
	cart *cart.Cart
}

// New creates an unauthenticated session with an empty cart.
// A nil generator defaults to UUIDv7.
func New(gen TokenGenerator) *Session {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &Session{
		Token: gen.Generate(),
		cart:  cart.New(),
	}
}

// CurrentUser returns the authenticated identity, if any.
func (s *Session) CurrentUser() (Identity, bool) {
	if s.user == nil {
		return Identity{}, false
	}
	return *s.user, true
}

// IsAdmin reports whether the session is authenticated as the admin.
func (s *Session) IsAdmin() bool {
	return s.user != nil && s.user.Role == model.RoleAdmin
}

// Cart exposes the session's cart for reads and quantity mutations.
// Adding items goes through AddToCart so the authentication gate applies.
func (s *Session) Cart() *cart.Cart {
	return s.cart
}

// Login authenticates against the store and transitions the session to
// authenticated. A failed lookup leaves the session untouched.
func (s *Session) Login(ctx context.Context, st *store.Store, username, password string) (Identity, error) {
	u, err := st.FindByCredentials(ctx, username, password)
	if err != nil {
		return Identity{}, fmt.Errorf("login: %w", err)
	}

	s.user = &Identity{Username: u.Username, Role: u.Role}
	return *s.user, nil
}

// Logout clears the identity and the cart. Safe to call when already
// logged out.
func (s *Session) Logout() {
	s.user = nil
	s.cart.Clear()
}

// AddToCart puts a product in the cart, gated on authentication: an
// unauthenticated session gets model.KindNotAuthenticated and the cart is
// not touched.
func (s *Session) AddToCart(p model.Product) error {
	if s.user == nil {
		return model.NewNotAuthenticated()
	}
	s.cart.Add(p)
	return nil
}

// Checkout converts the session's cart into a persisted order.
func (s *Session) Checkout(ctx context.Context, st *store.Store, clk cart.Clock) (model.Order, error) {
	return s.cart.Checkout(ctx, st, clk)
}

// StashCart persists the current cart lines so a later process run can
// restore them.
func (s *Session) StashCart(ctx context.Context, st *store.Store) error {
	return st.SaveCart(ctx, s.cart.Lines())
}

// RestoreCart replaces the cart with the persisted stash.
func (s *Session) RestoreCart(ctx context.Context, st *store.Store) error {
	lines, err := st.LoadCart(ctx)
	if err != nil {
		return fmt.Errorf("restore cart: %w", err)
	}
	s.cart.Replace(lines)
	return nil
}
