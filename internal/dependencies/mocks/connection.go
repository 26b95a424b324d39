package mocks

import (
	"errors"
	"sync"
)

// ErrSendFailed is returned by MockConnection when FailSend is set
var ErrSendFailed = errors.New("mock send failed")

// MockConnection records every frame sent to it
type MockConnection struct {
	id string

	mu       sync.Mutex
	frames   [][]byte
	failSend bool
}

// NewMockConnection creates a MockConnection with the given id
func NewMockConnection(id string) *MockConnection {
	return &MockConnection{id: id}
}

// ID returns the connection id
func (c *MockConnection) ID() string {
	return c.id
}

// Send records the frame, or fails if FailSend was set
func (c *MockConnection) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend {
		return ErrSendFailed
	}
	c.frames = append(c.frames, data)
	return nil
}

// FailSend makes subsequent sends fail
func (c *MockConnection) FailSend(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failSend = fail
}

// Messages returns a copy of the frames sent so far
func (c *MockConnection) Messages() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	copy(out, c.frames)
	return out
}

// Last returns the most recent frame, or nil if none
func (c *MockConnection) Last() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Reset clears recorded frames
func (c *MockConnection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}
