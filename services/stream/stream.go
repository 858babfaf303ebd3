// Package stream maintains the one-way push channel for a lecture's board.
// Events are content-free "something changed" signals; the subscriber reacts
// by re-fetching the full question set, never by applying a delta.
package stream

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/r3labs/sse/v2"

	"github.com/darasahq/ubao/core"
)

// Subscription is a live SSE connection scoped to one lecture. Reconnection
// on transport failure is the channel's own concern; nothing propagates to
// the owner.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Open establishes the push channel for lectureID, invoking onRefresh on
// every event. Without a credential no channel is opened and nil is returned:
// the board then runs in degraded mode on explicit loads only.
// Close is nil-safe on purpose.
func Open(conf *core.Config, lectureID, token string, onRefresh func(), log core.Logger) *Subscription {
	if token == "" {
		log.Debug(fmt.Sprintf("no credential; board for lecture %s runs without push updates", lectureID))
		return nil
	}

	streamURL := fmt.Sprintf(
		"%s/v1/lectures/%s/stream?token=%s",
		conf.API.BaseURL, url.PathEscape(lectureID), url.QueryEscape(token),
	)
	client := sse.NewClient(streamURL)
	// keep retrying forever; a lecture board may well outlive a flaky network
	client.ReconnectStrategy = neverStop()

	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		err := client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			// payload is content-free; its arrival is the whole message
			onRefresh()
		})
		if err != nil && ctx.Err() == nil {
			// non-fatal: the board keeps its last-known-good state
			log.Warn(fmt.Sprintf("push channel for lecture %s gave up", lectureID), err)
		}
	}()
	return sub
}

// Close shuts the channel down and waits until no more events can be
// delivered, so a closed board never refreshes into a newer lecture's store.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

func neverStop() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0 // retry indefinitely
	return b
}
