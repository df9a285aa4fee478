package telegram

import (
	"context"
	"sync"

	"github.com/alekspetrov/tgassistant/internal/logging"
)

// Transport pulls updates from the bot framework and hands them to the
// Handler one at a time.
type Transport struct {
	source  UpdateSource
	handler *Handler
	stopCh  chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewTransport creates a new Telegram transport layer.
func NewTransport(source UpdateSource, handler *Handler) *Transport {
	return &Transport{
		source:  source,
		handler: handler,
		stopCh:  make(chan struct{}),
	}
}

// Start runs the receive loop in a goroutine.
func (t *Transport) Start(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.Run(ctx)
	}()
}

// Run consumes updates until it is stopped or the stream closes.
func (t *Transport) Run(ctx context.Context) {
	log := logging.WithComponent("telegram")
	log.Debug("Transport loop started")
	defer log.Debug("Transport loop stopped")

	updates := t.source.Updates()
	for {
		select {
		case <-ctx.Done():
			t.stopSource()
			return
		case <-t.stopCh:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.handler.HandleUpdate(ctx, update)
		}
	}
}

// Stop stops receiving updates and waits for the loop to exit.
func (t *Transport) Stop() {
	t.stopSource()
	t.wg.Wait()
}

func (t *Transport) stopSource() {
	t.once.Do(func() {
		close(t.stopCh)
		t.source.StopUpdates()
	})
}
