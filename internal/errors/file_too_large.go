package errors

import "net/http"

var ErrFileTooLarge = &Exception{
	Message:    "file exceeds the 10 MB limit",
	StatusCode: http.StatusBadRequest,
}
