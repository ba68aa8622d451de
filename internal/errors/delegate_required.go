package errors

import "net/http"

var ErrDelegateRequired = &Exception{
	Message:    "delegate user id is required",
	StatusCode: http.StatusBadRequest,
}
