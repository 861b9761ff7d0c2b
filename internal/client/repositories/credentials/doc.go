// Package credentials is the client's credential store: durable key/value
// persistence for the session token and the cached user profile.
//
// # Contract
//
// Repository exposes Put, Get, Delete and Clear. Every operation takes a
// context, is atomic per key and safe for concurrent use (last write wins).
// Get returns (nil, nil) for an absent key, and deleting an absent key is not
// an error. Failures are always returned to the caller, wrapped with the key
// they concern.
//
// There is no transaction spanning KeyAuthToken and KeyUserData: callers must
// treat a token without a profile as "profile unknown, session still valid".
//
// # Backends
//
//   - SQLiteRepository: a local database file (modernc.org/sqlite) whose
//     schema is applied from embedded goose migrations.
//   - RedisRepository: a Redis instance, keys namespaced by a prefix.
//   - MemoryRepository: an in-process map for ephemeral sessions and tests.
//
// Open picks one from Options.
package credentials
