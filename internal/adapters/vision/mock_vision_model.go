package vision

import (
	"context"
	"sync"
)

type MockReply struct {
	Text string
	Err  error
}

type MockCall struct {
	Prompt   string
	Image    []byte
	MimeType string
}

// MockVisionModel answers from a table keyed by image content.
// Replies queued under the same image are consumed in order; the last one repeats.
type MockVisionModel struct {
	mu      sync.Mutex
	replies map[string][]MockReply
	calls   []MockCall
}

func NewMockVisionModel(replies map[string][]MockReply) *MockVisionModel {
	if replies == nil {
		replies = map[string][]MockReply{}
	}
	return &MockVisionModel{replies: replies}
}

func (m *MockVisionModel) Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Prompt: prompt, Image: image, MimeType: mimeType})

	queue := m.replies[string(image)]
	if len(queue) == 0 {
		return "", nil
	}
	r := queue[0]
	if len(queue) > 1 {
		m.replies[string(image)] = queue[1:]
	}
	return r.Text, r.Err
}

// Calls returns a copy of every request received so far.
func (m *MockVisionModel) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}
