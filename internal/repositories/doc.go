// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository wraps the shared [store.Store] and executes short-lived
// statements against it; no cursor is held across calls.
//
// Key Implementations:
//   - [SongRepository] : song CRUD plus mood-filtered queries
//   - [PlaylistRepository] : idempotent playlist creation, membership, and
//     mood-playlist generation
//   - [UserRepository] : credential store with hashed passwords, login
//     throttling, and session tokens
//
// Error contracts follow the store's taxonomy: pure reads degrade to empty
// results (the failure is logged, never surfaced, so a browsing caller stays
// responsive), while writes and authentication surface wrapped errors.
package repositories
