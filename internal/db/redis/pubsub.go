package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/db"
)

const unsubscribeTimeout = 2 * time.Second

// Publish sends a message to every subscriber of channel.
func (s *Store) Publish(ctx context.Context, channel string, message []byte) error {
	cmd := s.b().Publish().Channel(channel).Message(string(message)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpPublish, Err: err}
	}
	return nil
}

// Subscribe listens on channel over a dedicated connection.
// Returns nil once ctx is done, or the connection error if it breaks first.
func (s *Store) Subscribe(ctx context.Context, channel string, h db.SubscriptionHandler) error {
	conn, release := s.dedicate()
	defer release()

	wait := conn.SetPubSubHooks(rueidis.PubSubHooks{
		OnSubscription: func(sub rueidis.PubSubSubscription) {
			if sub.Kind == "subscribe" && sub.Channel == channel && h.OnSubscribed != nil {
				h.OnSubscribed()
			}
		},
		OnMessage: func(m rueidis.PubSubMessage) {
			if m.Channel == channel && h.OnMessage != nil {
				h.OnMessage([]byte(m.Message))
			}
		},
	})

	cmd := s.b().Subscribe().Channel(channel).Build()
	if err := conn.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSubscribe, Err: err}
	}

	select {
	case <-ctx.Done():
		unsubCtx, cancel := context.WithTimeout(context.Background(), unsubscribeTimeout)
		defer cancel()
		_ = conn.Do(unsubCtx, s.b().Unsubscribe().Channel(channel).Build()).Error()
		return nil
	case err := <-wait:
		if err == nil {
			// hooks detached without a connection error
			return &db.Error{Op: db.OpSubscribe, Err: rueidis.ErrClosing}
		}
		return &db.Error{Op: db.OpSubscribe, Err: err}
	}
}
