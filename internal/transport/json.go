// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONTransport writes each payload as one compact JSON document followed
// by a newline. It does not own the writer.
type JSONTransport struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONTransport creates a JSONTransport writing to w.
func NewJSONTransport(w io.Writer) *JSONTransport {
	return &JSONTransport{enc: json.NewEncoder(w)}
}

// Send encodes data. Non-finite floats cannot be represented in JSON and
// are reported as an error.
func (t *JSONTransport) Send(data any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.enc.Encode(data); err != nil {
		return fmt.Errorf("json transport: %w", err)
	}
	return nil
}

// Close is a no-op; the caller owns the writer.
func (t *JSONTransport) Close() error {
	return nil
}

var _ Transport = (*JSONTransport)(nil)
