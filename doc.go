// Package objpool provides a generic, thread-safe object pool. Callers
// supply a factory that manufactures new instances, an optional activate
// hook run when a reused instance is handed out, and an optional reset
// hook run when an instance is returned. Unlike sync.Pool, items are
// never discarded behind the caller's back, the idle count is
// observable, and the pool can be pre-warmed with Prime.
package objpool
