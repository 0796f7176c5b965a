package ports

import (
	"context"
	"net/url"
)

// Requester is the transport surface the resource clients and the
// authenticator depend on. Do sends one JSON request and decodes the JSON
// response body into out (skipped when out is nil). Error responses are
// translated by the gateway's response transform before they reach callers.
type Requester interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Navigator performs in-app navigation. Replace swaps the current history
// entry so the user cannot navigate back into a stale session.
type Navigator interface {
	Navigate(path string)
	Replace(path string)
}
