// Package statemachine provides a small finite state machine with an
// explicit transition table.
//
// The session manager uses it to make its lifecycle transitions
// (uninitialized → initializing → authenticated/anonymous, and the
// login/logout flips between the latter two) checkable: an operation that
// would move the session through an undeclared edge is a programming
// error and fails loudly instead of silently corrupting state.
//
//	m := statemachine.New("idle",
//		statemachine.T("idle", "start", "running"),
//		statemachine.T("running", "stop", "idle"),
//	)
//	state, err := m.Fire("start") // "running", nil
package statemachine
