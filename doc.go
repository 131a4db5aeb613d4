// Package learnkit is a client SDK for the skillhub e-learning platform API.
//
// The root package holds the small set of types shared across the SDK's
// sub-packages, most notably ValidationError: the structured field-level
// rejection returned by the remote API on registration and other form
// submissions. Everything else lives in focused sub-packages:
//
//   - pkg/apiclient  – HTTP transport for the remote API
//   - pkg/tokenstore – durable single-slot session token persistence
//   - pkg/cache      – keyed single-flight cache shared by SDK consumers
//   - pkg/session    – the authentication session manager
//
// See pkg/session for the main entry point.
package learnkit
