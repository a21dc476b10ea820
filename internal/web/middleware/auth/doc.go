// Package auth provides the Fiber request authentication middleware and the
// per-route authorization guard. The middleware validates bearer tokens and
// establishes a request-scoped principal; the guard checks declarative route
// requirements (public, authenticated, or a named authority) against it.
package auth
