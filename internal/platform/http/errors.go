package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

const UnexpectedErrorMessage = "An unexpected error occurred while processing your request."

type UnexpectedErrorResponse struct {
	DisplayMessage string `json:"displayMessage" example:"An unexpected error occurred while processing your request."`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// WriteUnexpectedError writes the generic 500 body. The internal error text is
// included only when expose is set.
func WriteUnexpectedError(w http.ResponseWriter, err error, expose bool) {
	res := UnexpectedErrorResponse{DisplayMessage: UnexpectedErrorMessage}
	if expose && err != nil {
		res.ErrorMessage = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(res)
}

// Recoverer turns panics into the generic 500 response.
func Recoverer(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				logrus.WithError(err).WithFields(logrus.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				}).Error("Recovered from panic")
				WriteUnexpectedError(w, err, expose)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
