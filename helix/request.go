package helix

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/shurizzle/twitch-api2/auth"
)

// Request is a Helix endpoint declaration.
//
// Query parameters are the exported fields tagged `query:"name"`; untagged
// fields are never sent, nor are nil pointers and empty strings. Path
// parameters are the fields tagged `path:"name"` matching `{name}` segments
// of Path. Fields may carry `validate` tags; they are checked before the URI is
// built.
type Request interface {
	// Path is the endpoint path relative to the Helix base URL.
	Path() string
	// Scopes lists the scopes the token must carry. All are required.
	Scopes() []auth.Scope
}

// RequestGet is a Helix endpoint that GETs information.
type RequestGet[D any] interface {
	Request
	ParseGetResponse(uri string, status int, body []byte) (InnerResponse[D], error)
}

// RequestPost is a Helix endpoint that POSTs a body of type B.
type RequestPost[B HelixRequestBody, D any] interface {
	Request
	ParsePostResponse(uri string, status int, body []byte) (InnerResponse[D], error)
	postBody(B)
}

// RequestPut is a Helix endpoint that PUTs a body of type B.
type RequestPut[B HelixRequestBody, D any] interface {
	Request
	ParsePutResponse(uri string, status int, body []byte) (InnerResponse[D], error)
	putBody(B)
}

// RequestPatch is a Helix endpoint that PATCHes a body of type B.
type RequestPatch[B HelixRequestBody, D any] interface {
	Request
	ParsePatchResponse(uri string, status int, body []byte) (InnerResponse[D], error)
	patchBody(B)
}

// RequestDelete is a Helix endpoint that DELETEs information.
type RequestDelete[D any] interface {
	Request
	ParseDeleteResponse(uri string, status int, body []byte) (InnerResponse[D], error)
}

// Paginated is implemented by requests whose responses carry a cursor.
// WithCursor returns a copy of the request pointing at the given page; the
// receiver is left untouched.
type Paginated[R any] interface {
	WithCursor(cursor Cursor) R
}

// Endpoint declarations embed one of the markers below to conform to a verb
// capability. The marker supplies the default decoder for that verb; an
// endpoint with a different envelope declares its own Parse*Response method,
// which shadows the embedded one.

// Get decodes {"data": D, "pagination": {...}}. The data field is required.
type Get[D any] struct{}

func (Get[D]) ParseGetResponse(uri string, status int, body []byte) (InnerResponse[D], error) {
	return decodeEnvelope[D](http.MethodGet, uri, status, body, true)
}

// GetFirst decodes {"data": [D, ...]} and keeps the first entry. An empty
// data array is an invalid response.
type GetFirst[D any] struct{}

func (GetFirst[D]) ParseGetResponse(uri string, status int, body []byte) (InnerResponse[D], error) {
	var out InnerResponse[D]
	inner, err := decodeEnvelope[[]D](http.MethodGet, uri, status, body, true)
	if err != nil {
		return out, err
	}
	if len(inner.Data) == 0 {
		return out, &InvalidResponseError{
			Method: http.MethodGet,
			URI:    uri,
			Status: status,
			Body:   body,
			Reason: "expected an entry in `data`",
		}
	}
	out.Data = inner.Data[0]
	out.Pagination = inner.Pagination
	out.Total = inner.Total
	return out, nil
}

// Post decodes {"data": D}. A 204 No Content response yields the zero D.
type Post[B HelixRequestBody, D any] struct{}

func (Post[B, D]) ParsePostResponse(uri string, status int, body []byte) (InnerResponse[D], error) {
	return decodeEnvelope[D](http.MethodPost, uri, status, body, status != http.StatusNoContent)
}

func (Post[B, D]) postBody(B) {}

// Put accepts an empty success body; otherwise it decodes {"data": D}.
type Put[B HelixRequestBody, D any] struct{}

func (Put[B, D]) ParsePutResponse(uri string, status int, body []byte) (InnerResponse[D], error) {
	return decodeEnvelope[D](http.MethodPut, uri, status, body, false)
}

func (Put[B, D]) putBody(B) {}

// Patch accepts an empty success body; otherwise it decodes {"data": D}.
type Patch[B HelixRequestBody, D any] struct{}

func (Patch[B, D]) ParsePatchResponse(uri string, status int, body []byte) (InnerResponse[D], error) {
	return decodeEnvelope[D](http.MethodPatch, uri, status, body, false)
}

func (Patch[B, D]) patchBody(B) {}

// Delete accepts an empty success body; otherwise it decodes {"data": D}.
type Delete[D any] struct{}

func (Delete[D]) ParseDeleteResponse(uri string, status int, body []byte) (InnerResponse[D], error) {
	return decodeEnvelope[D](http.MethodDelete, uri, status, body, false)
}

// NoContent is the response type of endpoints that answer 204 No Content.
type NoContent struct{}

type rawEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination Pagination      `json:"pagination"`
	Total      *int64          `json:"total,omitempty"`
}

// decodeEnvelope decodes a success body. When requireData is set, a missing
// body or data field is an invalid response; otherwise it yields the zero D.
func decodeEnvelope[D any](method, uri string, status int, body []byte, requireData bool) (InnerResponse[D], error) {
	var out InnerResponse[D]

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		if requireData {
			return out, &InvalidResponseError{Method: method, URI: uri, Status: status, Body: body, Reason: "empty response body"}
		}
		return out, nil
	}

	var raw rawEnvelope
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return out, &DecodeError{Method: method, URI: uri, Status: status, Body: body, Err: err}
	}

	if len(raw.Data) == 0 || bytes.Equal(raw.Data, []byte("null")) {
		if requireData {
			return out, &InvalidResponseError{Method: method, URI: uri, Status: status, Body: body, Reason: "expected `data` in response"}
		}
	} else if err := json.Unmarshal(raw.Data, &out.Data); err != nil {
		return out, &DecodeError{Method: method, URI: uri, Status: status, Body: body, Err: err}
	}

	out.Pagination = raw.Pagination
	out.Total = raw.Total
	return out, nil
}
