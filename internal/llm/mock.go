package llm

import (
	"context"
	"sync"
)

// MockResponse is one scripted answer of a MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Stop  StopReason
	Err   error
}

// MockText scripts a plain successful completion.
func MockText(s string) MockResponse {
	return MockResponse{Text: s}
}

// MockProvider replays scripted responses in order and records each request.
// After the script runs out it repeats the fallback, or reports the provider
// as unavailable when no fallback is set.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockResponse
	fallback *MockResponse
	Calls    []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	var next MockResponse
	if len(m.script) > 0 {
		next, m.script = m.script[0], m.script[1:]
	} else if m.fallback != nil {
		next = *m.fallback
	} else {
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.Stop
	if stop == "" {
		stop = StopEnd
	}
	return &Response{Text: next.Text, Usage: next.Usage, Model: "mock", Stop: stop}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

func (m *MockProvider) SetFallback(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &r
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Prompt returns the prompt of the i-th call, or "" when out of range.
func (m *MockProvider) Prompt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.Calls) {
		return ""
	}
	return m.Calls[i].Prompt
}
