package fio

// Kind classifies the outcome of an upstream call.
type Kind int

const (
	// KindPayload is a 200 response with a decoded body.
	KindPayload Kind = iota
	// KindEmpty is a 204 response; there is nothing to read.
	KindEmpty
	// KindAuthFailed is a 401 response.
	KindAuthFailed
	// KindTransient is any other failure.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindPayload:
		return "payload"
	case KindEmpty:
		return "empty"
	case KindAuthFailed:
		return "auth_failed"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Result is the outcome of a gateway call. Callers switch on Kind or use Err.
type Result[T any] struct {
	kind  Kind
	value T
	err   error

	// skipped holds a *DataError per malformed record dropped from a list payload.
	skipped []error
}

func payload[T any](v T) Result[T] {
	return Result[T]{kind: KindPayload, value: v}
}

func empty[T any]() Result[T] {
	return Result[T]{kind: KindEmpty}
}

func authFailed[T any](endpoint string) Result[T] {
	return Result[T]{kind: KindAuthFailed, err: &AuthenticationError{Endpoint: endpoint}}
}

func transient[T any](err *TransientError) Result[T] {
	return Result[T]{kind: KindTransient, err: err}
}

// Kind returns the outcome class.
func (r Result[T]) Kind() Kind { return r.kind }

// Value returns the decoded payload, or the zero value when the result is not a payload.
func (r Result[T]) Value() T { return r.value }

// Err returns nil for payload and empty results, *AuthenticationError for auth
// failures and *TransientError otherwise.
func (r Result[T]) Err() error { return r.err }

// Skipped returns the malformed records dropped while decoding a list payload.
func (r Result[T]) Skipped() []error { return r.skipped }

// OK reports whether the call reached the upstream and was accepted.
func (r Result[T]) OK() bool {
	return r.kind == KindPayload || r.kind == KindEmpty
}
