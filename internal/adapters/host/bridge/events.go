package bridge

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/bnema/appearance-snapshots/internal/ports"
)

const eventSpecialModeExited = "special_mode_exited"

var _ ports.SpecialModeSignal = (*Client)(nil)

type hostEvent struct {
	ID   uint64 `json:"id"`
	Type string `json:"type"`
}

// SubscribeExit registers handler for "special mode exited" events delivered by Pump.
func (c *Client) SubscribeExit(handler ports.SpecialModeExitHandler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.handlers[id] = handler

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers, id)
	}
}

// Pump drains pending host events once. Exit events are dispatched synchronously and
// only acknowledged afterwards; the host holds its default handling until the ack.
func (c *Client) Pump(ctx context.Context) (int, error) {
	var resp struct {
		Events []hostEvent `json:"events"`
	}
	if err := c.do(ctx, http.MethodPost, "/events/poll", struct{}{}, &resp); err != nil {
		return 0, err
	}

	handled := 0
	for _, event := range resp.Events {
		if event.Type == eventSpecialModeExited {
			for _, handler := range c.snapshotHandlers() {
				handler(ctx)
			}
			handled++
		}

		ack := struct {
			ID uint64 `json:"id"`
		}{ID: event.ID}
		if err := c.do(ctx, http.MethodPost, "/events/ack", ack, nil); err != nil {
			return handled, fmt.Errorf("ack host event %d: %w", event.ID, err)
		}
	}

	return handled, nil
}

func (c *Client) snapshotHandlers() []ports.SpecialModeExitHandler {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]uint64, 0, len(c.handlers))
	for id := range c.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	handlers := make([]ports.SpecialModeExitHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, c.handlers[id])
	}
	return handlers
}
