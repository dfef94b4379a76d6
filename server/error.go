package server

import (
	"errors"
	"net/http"

	"github.com/bena618/Armageddon-Chess-Backend/errs"
	"github.com/labstack/echo/v4"
)

// errorBody is the JSON shape every failure response carries: `error:
// <code>` with the matching HTTP status; successes carry `ok: true`
// instead, generalizing the api server's Reason/ErrorReason pattern into
// the typed errs.Kind the room and index packages already return.
type errorBody struct {
	Error string `json:"error"`
}

// writeErr renders err as its matching HTTP status + error body. A
// *errs.Error renders its own Kind and Status; anything else (a storage
// fault, an unexpected panic recovery) renders as internal_error/500.
func writeErr(c echo.Context, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return c.JSON(e.Status(), errorBody{Error: string(e.Kind)})
	}
	return c.JSON(http.StatusInternalServerError, errorBody{Error: string(errs.InternalError)})
}

// httpErrorHandler overrides echo's default so unmatched routes and
// malformed JSON bodies render the same {error: code} shape as every
// other response instead of echo's default {message: ...}.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			_ = c.JSON(http.StatusNotFound, errorBody{Error: string(errs.NotFound)})
			return
		case http.StatusBadRequest:
			_ = c.JSON(http.StatusBadRequest, errorBody{Error: string(errs.JSONSyntaxError)})
			return
		}
	}
	_ = writeErr(c, err)
}
