package helix

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxBodySize is the largest request body the client will send.
const MaxBodySize = 1 << 20

const contentTypeJSON = "application/json"

// HelixRequestBody is a request payload that can be encoded for the wire.
type HelixRequestBody interface {
	// TryToBody returns the encoded body. A nil or empty slice sends no body.
	TryToBody() ([]byte, error)
}

// EmptyBody is the body of requests that carry no payload.
type EmptyBody struct{}

// TryToBody implements HelixRequestBody
func (EmptyBody) TryToBody() ([]byte, error) { return nil, nil }

// JSONBody validates v against its validate tags and encodes it as JSON.
// Body types implement HelixRequestBody by calling it:
//
//	func (b CreatePollBody) TryToBody() ([]byte, error) { return helix.JSONBody(b) }
func JSONBody(v any) ([]byte, error) {
	if err := validateStruct(v); err != nil {
		return nil, &BodyError{Reason: "invalid fields: " + describeValidation(err)}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, &BodyError{Reason: "could not serialize", Err: err}
	}
	if len(data) > MaxBodySize {
		return nil, &BodyError{Reason: fmt.Sprintf("body is %d bytes, limit is %d", len(data), MaxBodySize)}
	}
	return data, nil
}

// encodeBody produces the wire bytes and content type of b. Either the full
// body is returned or an error; nothing is written on failure.
func encodeBody(b HelixRequestBody) ([]byte, string, error) {
	if b == nil {
		return nil, "", nil
	}
	data, err := b.TryToBody()
	if err != nil {
		var bodyErr *BodyError
		if errors.As(err, &bodyErr) {
			return nil, "", err
		}
		return nil, "", &BodyError{Reason: "could not serialize", Err: err}
	}
	if len(data) == 0 {
		return nil, "", nil
	}
	if len(data) > MaxBodySize {
		return nil, "", &BodyError{Reason: fmt.Sprintf("body is %d bytes, limit is %d", len(data), MaxBodySize)}
	}
	return data, contentTypeJSON, nil
}
