package testutils

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/protocol"
)

// MockSource simulates a connected event source
type MockSource struct {
	IDVal    string
	Messages []protocol.Response // Stores structured responses
	RawBytes []string            // Stores raw bytes
	Closed   int
	Mu       sync.Mutex
}

func NewMockSource(id string) *MockSource {
	return &MockSource{IDVal: id, Messages: make([]protocol.Response, 0)}
}

func (m *MockSource) ID() string { return m.IDVal }

func (m *MockSource) Close() {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Closed++
}

func (m *MockSource) SendJSON(v interface{}) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	if resp, ok := v.(protocol.Response); ok {
		m.Messages = append(m.Messages, resp)
	}
}

func (m *MockSource) SendBytes(b []byte) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.RawBytes = append(m.RawBytes, string(b))
}

func (m *MockSource) LastMsgType() string {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1].Type
}

// Last returns the most recent structured response.
func (m *MockSource) Last() protocol.Response {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(m.Messages) == 0 {
		return protocol.Response{}
	}
	return m.Messages[len(m.Messages)-1]
}

// Broadcasts decodes every raw message received through Broadcast.
func (m *MockSource) Broadcasts(t *testing.T) []protocol.Response {
	t.Helper()
	m.Mu.Lock()
	defer m.Mu.Unlock()

	out := make([]protocol.Response, 0, len(m.RawBytes))
	for _, raw := range m.RawBytes {
		var resp protocol.Response
		if err := json.Unmarshal([]byte(raw), &resp); err != nil {
			t.Fatalf("broadcast is not valid JSON: %v", err)
		}
		out = append(out, resp)
	}
	return out
}

// MockQuoteStore simulates Redis
type MockQuoteStore struct {
	Snapshots          []string
	SubscribedChannels map[string]int // symbol -> count
	Unsubscribed       []string
	Messages           chan [2]string // symbol, payload
	Mu                 sync.Mutex
}

func NewMockStore() *MockQuoteStore {
	return &MockQuoteStore{
		SubscribedChannels: make(map[string]int),
		Messages:           make(chan [2]string, 16),
	}
}

// GetSnapshots returns the queued snapshots that belong to one of symbols.
func (m *MockQuoteStore) GetSnapshots(ctx context.Context, symbols []string) ([]string, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	var out []string
	for _, snap := range m.Snapshots {
		for _, sym := range symbols {
			if strings.Contains(snap, `"symbol":"`+sym+`"`) {
				out = append(out, snap)
				break
			}
		}
	}
	return out, nil
}

func (m *MockQuoteStore) Subscriptions(symbol string) int {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.SubscribedChannels[symbol]
}

func (m *MockQuoteStore) SubscribeToFeed(ctx context.Context, symbol string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.SubscribedChannels[symbol]++
	return nil
}

func (m *MockQuoteStore) UnsubscribeFromFeed(ctx context.Context, symbol string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Unsubscribed = append(m.Unsubscribed, symbol)
	m.SubscribedChannels[symbol]--
	if m.SubscribedChannels[symbol] <= 0 {
		delete(m.SubscribedChannels, symbol)
	}
	return nil
}

// RunPubSub replays queued messages until ctx is done or Messages is closed.
func (m *MockQuoteStore) RunPubSub(ctx context.Context, onMessage func(symbol string, payload string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-m.Messages:
			if !ok {
				return
			}
			onMessage(msg[0], msg[1])
		}
	}
}

func (m *MockQuoteStore) Close() error { return nil }

func AssertTrue(t *testing.T, condition bool, msg string) {
	if !condition {
		t.Errorf("Assertion failed: %s", msg)
	}
}
