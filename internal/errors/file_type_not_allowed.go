package errors

import "net/http"

var ErrFileTypeNotAllowed = &Exception{
	Message:    "file type not allowed",
	StatusCode: http.StatusBadRequest,
}
