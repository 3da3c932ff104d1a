package polljoy

import (
	"errors"

	"github.com/dmitrymomot/polljoy/core/response"
)

var (
	ErrInvalidConfig      = errors.New("polljoy: invalid configuration")
	ErrBackendUnavailable = errors.New("polljoy: backend unavailable")
	ErrBackendStatus      = errors.New("polljoy: backend returned non-success status")
	ErrMalformedResponse  = errors.New("polljoy: backend response is not valid JSON")
	ErrMissingToken       = errors.New("polljoy: response submission requires a token")
	ErrInvalidBody        = errors.New("polljoy: invalid request body")
	ErrSessionStore       = errors.New("polljoy: session store failure")
	ErrMissingAppID       = errors.New("polljoy: no app id configured or supplied")
)

// toHTTPError maps connector errors onto HTTP errors. HTTP errors raised
// further down (body limits) keep their own status.
func toHTTPError(err error) error {
	var httpErr response.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, ErrMissingToken):
		return response.ErrBadRequest.WithMessage("Missing response token").WithError(err)
	case errors.Is(err, ErrInvalidBody):
		return response.ErrBadRequest.WithMessage("Invalid request body").WithError(err)
	case errors.Is(err, ErrMissingAppID):
		return response.ErrBadRequest.WithMessage("Missing app id").WithError(err)
	case errors.Is(err, ErrBackendUnavailable),
		errors.Is(err, ErrBackendStatus),
		errors.Is(err, ErrMalformedResponse):
		return response.ErrBadGateway.WithError(err)
	case errors.Is(err, ErrSessionStore):
		return response.ErrInternalServerError.WithMessage("Session store unavailable")
	default:
		return response.ErrInternalServerError
	}
}
