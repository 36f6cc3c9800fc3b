// Package store defines interfaces and implementations for data persistence.
// It abstracts the storage backend behind narrow interfaces so the rest of the
// application never depends on a concrete implementation. The only backend in
// this service is an in-memory map; generated tasks do not survive a restart.
package store
