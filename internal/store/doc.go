// Package store provides SQLite-backed durable storage for the storefront.
//
// The store owns six tables:
//   - categories, products: the catalog, joined for display names
//   - users: accounts with argon2id password hashes and a role column
//   - cart: a stash of the in-memory cart between process runs
//   - orders, order_items: checkout snapshots
//
// # Conventions
//
// Repositories are methods on Store, one file per entity. Row scanning maps
// raw columns into validated model types at this boundary; nothing above
// the store sees an untyped row. List queries return empty slices (never
// nil), point lookups report model.KindNotFound, and mutations return the
// resulting entity so callers never need a follow-up fetch.
//
// Multi-statement sequences (checkout's order-then-items insert) run inside
// an explicit transaction.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
