// Package broadcast provides the in-process publish/subscribe mechanism
// the session manager uses to fan out state snapshots.
//
// A Broadcaster delivers each published message to every active
// subscriber without blocking the publisher: a subscriber that cannot
// keep up has messages dropped rather than stalling state transitions.
// That trade-off is deliberate — consumers re-render from the latest
// snapshot, so a dropped intermediate snapshot is harmless while a
// blocked transition is not.
//
// Subscriptions are scoped to a context and clean themselves up when it
// is cancelled:
//
//	sub := bus.Subscribe(ctx)
//	for msg := range sub.C() {
//		render(msg)
//	}
package broadcast
