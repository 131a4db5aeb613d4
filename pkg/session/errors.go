package session

import "errors"

var (
	// ErrPostLoginProfileFetch indicates credentials were accepted but the
	// follow-up profile fetch failed. The login is not considered complete
	// and local state has been failed closed.
	ErrPostLoginProfileFetch = errors.New("session.post_login_profile_fetch_failed")

	// ErrClosed indicates the manager has been closed.
	ErrClosed = errors.New("session.closed")
)
