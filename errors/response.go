package errors

import (
	"errors"
	"net/http"
)

// Response error response
type Response struct {
	Error       error
	ErrorCode   int
	Description string
	URI         string
	StatusCode  int
	Header      http.Header
}

// NewResponse create the response pointer
func NewResponse(err error, statusCode int) *Response {
	return &Response{
		Error:      err,
		StatusCode: statusCode,
	}
}

// SetHeader sets the header entries associated with key to
// the single element value.
func (r *Response) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
}

// Descriptions error description
var Descriptions = map[error]string{
	ErrMalformedContext: "The render context is missing a field the page requires",
	ErrMissingContext:   "The request did not carry a render context",
	ErrFixtureNotFound:  "No preview fixture is stored under that name",
	ErrStylesNotReady:   "The theme stylesheets did not finish loading",
	ErrInvalidRequest:   "The request is missing a required parameter or is otherwise malformed",
	ErrServerError:      "The theme server encountered an unexpected condition that prevented it from rendering the page",
}

// StatusCodes response error HTTP status code
var StatusCodes = map[error]int{
	ErrMalformedContext: 422,
	ErrMissingContext:   400,
	ErrFixtureNotFound:  404,
	ErrStylesNotReady:   503,
	ErrInvalidRequest:   400,
	ErrServerError:      500,
}

// Lookup finds the known error in err's chain
func Lookup(err error) (error, bool) {
	for known := range Descriptions {
		if errors.Is(err, known) {
			return known, true
		}
	}
	return nil, false
}
