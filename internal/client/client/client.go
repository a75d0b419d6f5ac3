package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client is the transport contract of the backend API. Paths are relative to
// the configured base URL.
//
// body may be nil, a *RawBody sent as is, or any value encoded as JSON.
// When out is non-nil a JSON response body is decoded into it.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Put(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// TokenSource yields the bearer credential for the next request. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RawBody is a pre-encoded request body, e.g. multipart form data.
type RawBody struct {
	ContentType string
	Data        []byte
}

func encodeBody(body any) (*RawBody, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case *RawBody:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return &RawBody{ContentType: "application/json", Data: data}, nil
	}
}
