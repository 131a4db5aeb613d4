// Package async provides a minimal Future used to run work in the
// background while exposing its completion to callers.
//
// The session manager runs its startup validation through a Future so
// construction never blocks: consumers read the loading state immediately
// and Await the outcome only when they need it.
package async
