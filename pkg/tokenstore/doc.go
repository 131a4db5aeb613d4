// Package tokenstore provides durable single-slot persistence for the
// session token issued by the remote API.
//
// Exactly zero or one token exists per store at any time: Write replaces
// any prior value and Clear empties the slot. The store performs no
// validation; it is a dumb, durable slot whose contents only the session
// manager is allowed to mutate.
//
// Three implementations ship with the package:
//
//   - FileStore   – one token string in a 0600 file under the user config
//     directory; the default for CLI and desktop deployments.
//   - MemoryStore – ephemeral, for tests and short-lived processes.
//   - RedisStore  – a shared slot backed by Redis, for kiosk or
//     server-rendered deployments where several processes present the
//     same session.
//
// A store whose medium is unavailable reports the token as absent rather
// than guessing: callers fail closed to the unauthenticated state.
package tokenstore
