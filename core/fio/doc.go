// Package fio is the gateway to the FIO REST API (https://rest.fnar.net).
//
// Every call returns a Result[T] whose Kind distinguishes a decoded payload
// (200), an empty answer (204), a rejected credential (401) and every other
// failure, which is transient. Result.Err maps the last two onto
// *AuthenticationError and *TransientError so callers can use errors.As.
//
// Requests pass through a shared token-bucket limiter and a circuit breaker.
// Only transient upstream failures count against the breaker.
//
// # Usage
//
//	client := fio.NewClient(cfg.FIO, fio.WithLogger(log))
//	res := client.WithAPIKey(key).UserStorage(ctx, "alice")
//	if err := res.Err(); err != nil {
//	    return err
//	}
//	storages := res.Value()
package fio
