// Package domain holds the core entities of the film-logging service and the
// repository interfaces the application layer depends on. Repositories return
// the sentinel errors declared here; the application layer translates them
// into structured errors at the service boundary.
package domain
