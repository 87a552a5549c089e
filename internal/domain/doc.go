// Package domain contains the record types managed by the service, their
// partial update payloads, and the declared constraints each record must
// satisfy. It is independent of any storage or delivery mechanism.
package domain
