// Package eventsub declares EventSub subscription types and decodes the
// notifications Twitch delivers for them.
//
// A subscription type is a condition struct that embeds Event[E], where E is
// the event payload. ParseNotification decodes a notification into the
// typed condition and event; Parse picks the type from the message itself.
package eventsub

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shurizzle/twitch-api2/auth"
	"github.com/shurizzle/twitch-api2/types"
)

// EventType is the `type` of a subscription, e.g. "channel.poll.progress".
type EventType string

// ErrUnknownEventType is returned by Parse for subscription types this
// package does not declare.
var ErrUnknownEventType = errors.New("unknown eventsub subscription type")

// Subscription is the condition of an EventSub subscription type.
type Subscription interface {
	EventType() EventType
	Version() string
	// Scopes the broadcaster's token must carry to create the subscription.
	Scopes() []auth.Scope
}

// EventSubscription is a subscription whose notifications carry events of
// type E.
type EventSubscription[E any] interface {
	Subscription
	event(E)
}

// Event ties a subscription condition to its event payload.
type Event[E any] struct{}

func (Event[E]) event(E) {}

// Transport is where notifications are delivered.
type Transport struct {
	// Method is "webhook" or "websocket".
	Method    string `json:"method"`
	Callback  string `json:"callback,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// SubscriptionInfo is the subscription block of a notification.
type SubscriptionInfo[S Subscription] struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Version   string          `json:"version"`
	Status    string          `json:"status"`
	Cost      int64           `json:"cost"`
	Condition S               `json:"condition"`
	Transport Transport       `json:"transport"`
	CreatedAt types.Timestamp `json:"created_at"`
}

// Notification is a decoded `{"subscription": ..., "event": ...}` message.
type Notification[S Subscription, E any] struct {
	Subscription SubscriptionInfo[S] `json:"subscription"`
	Event        E                   `json:"event"`
}

// EventType implements Payload
func (n *Notification[S, E]) EventType() EventType { return n.Subscription.Type }

// Payload is any decoded notification returned by Parse.
type Payload interface {
	EventType() EventType
}

// MismatchError is returned when a notification is for a different
// subscription type or version than the one requested.
type MismatchError struct {
	Type        EventType
	Version     string
	WantType    EventType
	WantVersion string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("notification is %s version %s, expected %s version %s", e.Type, e.Version, e.WantType, e.WantVersion)
}

type header struct {
	Subscription struct {
		Type    EventType `json:"type"`
		Version string    `json:"version"`
	} `json:"subscription"`
}

func readHeader(data []byte) (header, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("failed to decode notification: %w", err)
	}
	if h.Subscription.Type == "" {
		return h, fmt.Errorf("notification has no subscription type")
	}
	return h, nil
}

// ParseNotification decodes a notification for subscription type S.
func ParseNotification[S EventSubscription[E], E any](data []byte) (*Notification[S, E], error) {
	h, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	var zero S
	if h.Subscription.Type != zero.EventType() || h.Subscription.Version != zero.Version() {
		return nil, &MismatchError{
			Type:        h.Subscription.Type,
			Version:     h.Subscription.Version,
			WantType:    zero.EventType(),
			WantVersion: zero.Version(),
		}
	}

	var n Notification[S, E]
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to decode %s notification: %w", h.Subscription.Type, err)
	}
	return &n, nil
}

// Parse decodes a notification of any declared subscription type. Callers
// switch on the concrete type:
//
//	switch n := p.(type) {
//	case *eventsub.ChannelPollProgressNotification:
//	case *eventsub.ChannelPredictionEndNotification:
//	}
func Parse(data []byte) (Payload, error) {
	h, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	switch h.Subscription.Type {
	case ChannelPollProgressV1{}.EventType():
		return payload(ParseNotification[ChannelPollProgressV1](data))
	case ChannelPredictionEndV1{}.EventType():
		return payload(ParseNotification[ChannelPredictionEndV1](data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, h.Subscription.Type)
	}
}

// payload keeps a failed parse from becoming a non-nil Payload.
func payload[S Subscription, E any](n *Notification[S, E], err error) (Payload, error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}
