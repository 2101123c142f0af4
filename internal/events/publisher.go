package events

import "context"

// Publisher delivers a typed event on a named channel. Fire-and-forget: the
// caller assumes no delivery guarantee and must not treat publish failure as
// a domain failure.
//
//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock
type Publisher interface {
	Publish(ctx context.Context, channel string, event any) error
}
