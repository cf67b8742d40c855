package ledger

import "errors"

// Error taxonomy surfaced by every engine operation. Handlers translate
// these into HTTP statuses; the engine itself never recovers or retries,
// every query is an idempotent read safe to retry at the transport layer.
var (
	ErrUnauthorized = errors.New("unauthorized")     // Caller does not resolve to a valid user
	ErrBadRequest   = errors.New("bad request")      // Malformed date/month/year/range or invalid category
	ErrNotFound     = errors.New("not found")        // Referenced record absent
	ErrInternal     = errors.New("internal error")   // Store failure
)
