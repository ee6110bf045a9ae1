// Package events routes UI events from connected sources to named handlers.
package events

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/protocol"
)

// Source is anything that emits UI events and accepts responses.
type Source interface {
	ID() string
	SendJSON(v interface{})
	SendBytes(b []byte)
	Close()
}

type HandlerFunc func(src Source, ev protocol.Event)

type Dispatcher struct {
	handlers map[string]HandlerFunc
	sources  map[Source]bool

	logger *zap.Logger
	mu     sync.RWMutex
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		sources:  make(map[Source]bool),
		logger:   logger,
	}
}

// Register binds name to fn, replacing any previous handler.
func (d *Dispatcher) Register(name string, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = fn
}

func (d *Dispatcher) Dispatch(src Source, ev protocol.Event) {
	d.mu.RLock()
	fn, ok := d.handlers[ev.Type]
	d.mu.RUnlock()

	if !ok {
		sendError(src, ev.ID, "Unknown event: "+ev.Type)
		return
	}
	fn(src, ev)
}

func (d *Dispatcher) Attach(src Source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sources[src] = true
	d.logger.Debug("Source attached", zap.String("source", src.ID()))
}

// Detach forgets src and closes it. Detaching twice is a no-op.
func (d *Dispatcher) Detach(src Source) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.sources[src] {
		return
	}
	delete(d.sources, src)
	src.Close()
	d.logger.Debug("Source detached", zap.String("source", src.ID()))
}

// Broadcast encodes v once and sends it to every attached source.
func (d *Dispatcher) Broadcast(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		d.logger.Error("Failed to encode broadcast", zap.Error(err))
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	for src := range d.sources {
		src.SendBytes(b)
	}
}

func (d *Dispatcher) Sources() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sources)
}

func sendAck(src Source, id, status, msg string) {
	src.SendJSON(protocol.Response{Type: protocol.TypeAck, ID: id, Status: status, Message: msg})
}

func sendError(src Source, id, msg string) {
	src.SendJSON(protocol.Response{Type: protocol.TypeError, ID: id, Message: msg})
}

func send(src Source, id, typ string, data interface{}) {
	src.SendJSON(protocol.Response{Type: typ, ID: id, Data: data})
}
