// Package apiclient is the HTTP transport for the skillhub platform API.
//
// The client is stateless: every call is a pure function of its inputs
// and the remote response. It holds no token and no cached identity —
// session state lives in pkg/session, which consumes this package.
//
// # Wire contract
//
//	POST /login    {email, password}                → {token, user} | 4xx
//	POST /register {name, email, password, ...}     → {token, user} | 422 {errors: {field: [messages]}}
//	GET  /me       (bearer token)                   → {data: user}  | 401
//	POST /logout   (bearer token)                   → 2xx, best effort
//
// # Error taxonomy
//
// Failures map onto a small set of sentinels so callers can classify with
// errors.Is: ErrTransport for network-level failures, ErrInvalidCredentials
// for rejected logins, ErrUnauthorized for rejected tokens, ErrServer for
// remote 5xx, ErrMalformedResponse for undecodable bodies. Registration
// field rejections surface as learnkit.ValidationError carrying the full
// field → messages map.
//
// Every request carries an X-Request-ID header for log correlation.
package apiclient
