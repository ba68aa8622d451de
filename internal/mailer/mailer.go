// Package mailer is the outbound email transport. Delivery is always
// best effort: callers log and record failures, they never propagate
// them into the triggering operation.
package mailer

// Mailer sends a plain-text email to a single recipient.
type Mailer interface {
	Send(subject, body, recipient string) error
}
