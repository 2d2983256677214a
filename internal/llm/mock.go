package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is one scripted reply. A non-nil Err is returned instead
// of a Response.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider replays scripted replies in order and records every
// request it sees. Once the script runs out it answers with Fallback, or
// ErrProviderUnavailable when Fallback is nil.
type MockProvider struct {
	Fallback *MockResponse

	mu       sync.Mutex
	script   []MockResponse
	requests []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// demoReport lets `PATHFINDER_LLM_PROVIDER=mock pathfinder serve` answer
// without network access.
const demoReport = `### Conclusion
You enjoy understanding how things work and like turning ideas into something concrete. You stay calm when a plan changes and prefer steady progress over quick wins. Friends come to you when a problem needs untangling. You learn best by doing and by asking questions.

### Career Recommendations
**Software Engineer:** Building and debugging systems rewards your patience and curiosity.
**Industrial Designer:** You can shape ideas into objects people use every day.
**Data Analyst:** Finding patterns in messy information suits your methodical side.
**Civil Engineer:** Planning structures that last matches your preference for steady progress.`

func newDemoProvider() *MockProvider {
	return &MockProvider{Fallback: &MockResponse{Text: demoReport}}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	var next MockResponse
	switch {
	case len(m.script) > 0:
		next, m.script = m.script[0], m.script[1:]
	case m.Fallback != nil:
		next = *m.Fallback
	default:
		return nil, &ErrProviderUnavailable{Err: errors.New("mock script exhausted")}
	}

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Text: next.Text, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, resp)
	m.mu.Unlock()
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
