// Package session implements the client-side authentication session
// manager: it acquires, caches, validates and invalidates the user's
// authenticated session, and keeps that session in step with the keyed
// data cache the rest of the SDK shares.
//
// # Architecture
//
// A Manager owns every transition of the session token and the cached
// user profile; no other component writes either directly. It composes
// four collaborators:
//
//	┌──────────┐  snapshots  ┌───────────────────────┐
//	│ consumers│ ◄────────── │        Manager        │
//	└──────────┘             └───────────────────────┘
//	                          │        │         │
//	                  token   │  fetch │         │ HTTP
//	                          ▼        ▼         ▼
//	                   tokenstore   cache    apiclient
//
// The token store is a durable single slot (pkg/tokenstore). The profile
// lives in the shared keyed cache (pkg/cache) under one key whose fetcher
// is gated on token presence, so an unauthenticated process can never
// issue a profile fetch. The transport (pkg/apiclient) is stateless.
//
// # Lifecycle
//
// Construction reads the token store in the background. No token means
// the session settles anonymous immediately, without any network call. A
// stored token moves the session to initializing while the profile is
// fetched; success settles authenticated, and any failure — network,
// rejection, malformed response — fails closed: the token is cleared, the
// cache entry invalidated and the session settles anonymous. Expired
// sessions are routine, so that path is silent.
//
// Login and Register write a new token and force-refresh the profile;
// neither resolves until the profile is confirmed. Logout clears local
// state synchronously and revokes the token server-side on a best-effort
// background call — a user can always end their local session even when
// the server is unreachable.
//
// # Derived state
//
// Consumers read an immutable Snapshot (user, authenticated, loading,
// role flags) via Snapshot(), or subscribe to the stream of snapshots the
// manager publishes on every transition. Role flags are computed from the
// profile on each call and never stored, so they cannot diverge from it.
//
// # Usage
//
//	client, err := apiclient.New("https://api.example.com")
//	if err != nil { ... }
//
//	manager := session.New(client)
//	defer manager.Close()
//
//	if err := manager.Ready(ctx); err != nil { ... }
//
//	snap := manager.Snapshot()
//	if snap.Authenticated() {
//		fmt.Println("welcome back,", snap.User.Name)
//	}
package session
