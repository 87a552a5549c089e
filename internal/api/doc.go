// Package api handles incoming HTTP requests for the record stores: request
// decoding, path and query parameters, error-to-status mapping and response
// formatting. Handlers call the stores directly; all validation lives in the
// domain schemas the stores run.
package api
