package apiclient

import "errors"

var (
	// ErrTransport indicates a network-level failure: the request never
	// produced an HTTP response (DNS, connect, timeout).
	ErrTransport = errors.New("apiclient.transport_failed")

	// ErrInvalidCredentials indicates the remote API rejected a login or
	// registration attempt for bad credentials.
	ErrInvalidCredentials = errors.New("apiclient.invalid_credentials")

	// ErrUnauthorized indicates the bearer token was rejected (expired or
	// revoked).
	ErrUnauthorized = errors.New("apiclient.unauthorized")

	// ErrServer indicates an unexpected remote failure (5xx or an
	// unclassified 4xx).
	ErrServer = errors.New("apiclient.server_error")

	// ErrMalformedResponse indicates the remote API answered 2xx with a
	// body the client could not use.
	ErrMalformedResponse = errors.New("apiclient.malformed_response")
)
