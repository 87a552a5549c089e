// Package store defines the record store contract and the schemas that bind
// each record type to it. Implementations live under internal/platform so the
// handlers and the seed loader stay independent of how records are held.
package store
