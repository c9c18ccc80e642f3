// SPDX-License-Identifier: MIT
//
// Package transport carries pipeline inputs and results to one-way output
// sinks: structured text for external tooling and the log.
package transport

// Transport defines a generic interface for sending processed data.
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(data any) error
	Close() error
}

// Multi fans every payload out to several transports in order. Send and
// Close visit every transport and return the first error encountered.
type Multi []Transport

// Send forwards data to every transport.
func (m Multi) Send(data any) error {
	var first error
	for _, t := range m {
		if err := t.Send(data); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every transport.
func (m Multi) Close() error {
	var first error
	for _, t := range m {
		if err := t.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var _ Transport = Multi(nil)
