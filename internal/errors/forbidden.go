package errors

import "net/http"

var ErrForbidden = &Exception{
	Message:    "insufficient permissions",
	StatusCode: http.StatusForbidden,
}
