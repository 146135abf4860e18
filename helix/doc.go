// Package helix is a typed client for the Twitch Helix API.
//
// Every endpoint is a plain request value that declares its path, the
// scopes it needs and its response type. Endpoints conform to a verb
// capability by embedding a marker:
//
//	type GetChannelInformationRequest struct {
//		helix.Get[[]ChannelInformation]
//		BroadcasterID []types.UserID `query:"broadcaster_id" validate:"required,min=1,max=100"`
//	}
//
//	func (GetChannelInformationRequest) Path() string          { return "channels" }
//	func (GetChannelInformationRequest) Scopes() []auth.Scope { return nil }
//
// A single dispatcher executes any conforming request:
//
//	client, err := helix.NewClient(helix.Config{})
//	resp, err := helix.ReqGet(ctx, client, req, token)
//	fmt.Println(resp.Data)
//
// # Execution
//
// ReqGet, ReqPost, ReqPut, ReqPatch and ReqDelete share one execution
// path: check the token's scopes, build the URI, build the body, send one
// request through the configured HTTPClient and decode the response
// envelope of that verb. No request is retried.
//
// # Pagination
//
// Paginated requests implement WithCursor. NextPage, Pages and CollectAll
// re-issue a request with the cursor of the previous response until a
// response carries no cursor.
//
// # Errors
//
// Every failed call returns exactly one of:
//
//   - *ScopeError: the token lacks a required scope; nothing was sent
//   - *CreateRequestError: the URI (*InvalidURIError), body (*BodyError) or
//     credential could not be built; nothing was sent
//   - *TransportError: the request did not complete; the only retryable kind
//   - *DecodeError: a success body does not match the response type
//   - *InvalidResponseError: a success body lacks required content
//   - *StatusError: Helix answered with a non-success status
//
// KindOf classifies an error. GET and POST require a data envelope on
// success; PUT, PATCH and DELETE also accept an empty body.
package helix
