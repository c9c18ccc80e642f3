// SPDX-License-Identifier: MIT
package transport

import (
	"reflect"

	"onset/internal/log"
)

// LoggingTransport implements the Transport interface by logging a summary
// of each payload at DEBUG level.
type LoggingTransport struct {
	name string
}

// NewLoggingTransport creates a LoggingTransport whose lines are prefixed
// with name.
func NewLoggingTransport(name string) *LoggingTransport {
	return &LoggingTransport{name: name}
}

// Send logs the payload type and, for slices and maps, its length.
func (lt *LoggingTransport) Send(data any) error {
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		log.Debugf("%s: Sent %T (%d items)", lt.name, data, v.Len())
	default:
		log.Debugf("%s: Sent %T", lt.name, data)
	}
	return nil
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	log.Debugf("%s: Close called.", lt.name)
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
