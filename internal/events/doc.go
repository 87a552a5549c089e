// Package events carries record change notifications from the stores to
// interested components.
//
// Stores publish a RecordEvent through an EventEmitter after every committed
// create, update or delete. Handlers such as AuditLogHandler subscribe to the
// emitter without the stores knowing who is listening.
package events
