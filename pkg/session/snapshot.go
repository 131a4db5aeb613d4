package session

import "github.com/skillhub/learnkit/pkg/apiclient"

// Snapshot is the read-only projection of session state handed to
// consumers. It is immutable: every transition produces a new value.
//
// Authenticated and the role flags are derived from User on each call
// rather than stored, so they cannot diverge from the profile.
type Snapshot struct {
	// User is the authenticated profile, or nil when anonymous.
	User *apiclient.User

	// Loading is true while the session is being established: during
	// startup validation and while a profile fetch is in flight.
	Loading bool
}

// Authenticated reports whether a user profile is present.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// IsAdmin reports whether the session belongs to an admin.
func (s Snapshot) IsAdmin() bool {
	return s.User != nil && s.User.Role == apiclient.RoleAdmin
}

// IsTeacher reports whether the session belongs to a teacher.
func (s Snapshot) IsTeacher() bool {
	return s.User != nil && s.User.Role == apiclient.RoleTeacher
}

// IsStudent reports whether the session belongs to a student.
func (s Snapshot) IsStudent() bool {
	return s.User != nil && s.User.Role == apiclient.RoleStudent
}
