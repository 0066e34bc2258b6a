package appwrite

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/healthmaster/healthmaster-go/pkg/apperror"
)

// remoteError is the store's error envelope:
// {"message":"...","code":401,"type":"user_invalid_credentials"}.
type remoteError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func decodeRemoteError(r io.Reader) remoteError {
	var re remoteError
	// An undecodable body still maps by HTTP status.
	_ = json.NewDecoder(r).Decode(&re)
	return re
}

// mapError is the single point where store failures become typed
// errors. Callers above this boundary match on apperror.Kind only and
// never inspect status codes or error-type strings again.
func mapError(op, resource string, status int, remoteType, message string) *apperror.Error {
	kind := apperror.UnknownRemote

	switch remoteType {
	case "user_already_exists", "user_email_already_exists":
		kind = apperror.AccountExists
	case "user_invalid_credentials", "user_password_mismatch":
		kind = apperror.InvalidCredentials
	case "user_session_already_exists":
		kind = apperror.ConflictingSession
	default:
		switch status {
		case http.StatusTooManyRequests:
			kind = apperror.RateLimited
		case http.StatusBadRequest:
			kind = apperror.Validation
		case http.StatusUnauthorized, http.StatusForbidden:
			kind = apperror.Unauthenticated
		case http.StatusNotFound:
			kind = apperror.NotFound
		case http.StatusConflict:
			if resource == "account" {
				kind = apperror.AccountExists
			}
		}
	}

	return apperror.New(kind, op, resource, message, nil)
}
