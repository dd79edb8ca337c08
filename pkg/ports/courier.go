package ports

import "context"

// Courier delivers one composed message to the external messaging
// endpoint. A nil return means the endpoint acknowledged the message; any
// error is a failed delivery and its text is the user-visible diagnostic.
//
// Implementations make exactly one attempt per call: no retries, no
// cancellation once the outbound request is issued. Preventing duplicate
// deliveries is the caller's job (pkg/session holds the in-flight guard).
type Courier interface {
	Deliver(ctx context.Context, message string) error
}

// CourierFunc adapts a function to the Courier interface.
type CourierFunc func(ctx context.Context, message string) error

func (f CourierFunc) Deliver(ctx context.Context, message string) error {
	return f(ctx, message)
}
