package ports

import "context"

// Response is the normalized result of every HTTP exchange. Non-2xx answers
// are not errors at this layer: OK is false and Err carries the server's
// message (or a generic one). Transport failures use Status 0.
type Response struct {
	OK     bool
	Status int
	Body   []byte
	Err    string
}

// Gateway issues typed HTTP requests against the API. When token is
// non-empty it is sent in the x-access-token header; when body is non-nil
// it is JSON-encoded with Content-Type: application/json. No retries, no
// backoff; the caller decides.
type Gateway interface {
	Request(ctx context.Context, method, path string, body any, token string) Response
}
