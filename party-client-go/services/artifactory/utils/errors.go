package utils

import (
	"fmt"
	"strings"
)

// ResponseError is returned for every response with a failure status.
type ResponseError struct {
	Method     string
	Url        string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("Artifactory response to %s %s: %s", e.Method, e.Url, e.Status)
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		msg += "\n" + body
	}
	return msg
}

// UnknownQueryTypeError is returned before sending when the HTTP method is not supported.
type UnknownQueryTypeError struct {
	QueryType string
}

func (e *UnknownQueryTypeError) Error() string {
	return "Unsupported query type: " + e.QueryType
}
