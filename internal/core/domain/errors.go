package domain

import "errors"

var ErrDecode = errors.New("decode error")
var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("access forbidden")
var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("conflict")
var ErrValidation = errors.New("validation error")
var ErrServer = errors.New("server error")
var ErrNetwork = errors.New("network error")

// ClassifyStatus maps an HTTP status (0 for transport failure) to the
// matching sentinel error. 2xx maps to nil.
func ClassifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 0:
		return ErrNetwork
	case status == 401:
		return ErrUnauthorized
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	case status == 409:
		return ErrConflict
	case status >= 400 && status < 500:
		return ErrValidation
	default:
		return ErrServer
	}
}
