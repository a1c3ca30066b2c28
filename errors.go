package ripestat

import "fmt"

// ValidationError reports a caller-supplied argument that failed a type,
// range, or format constraint. It is always raised before any request
// leaves the process.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

func validationErrorf(param, format string, args ...interface{}) error {
	return &ValidationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// RequestError reports a transport-level failure: the request could not
// be sent, or the service answered outside the 2xx range before any
// envelope was available.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *RequestError) Unwrap() error { return e.Err }

// ResponseError reports a call that reached the service but came back
// unusable: the envelope carries a non-success status code, is
// structurally malformed, or its data payload does not decode.
type ResponseError struct {
	URL        string
	Status     string
	StatusCode int
	Messages   [][]string
	Reason     string
	Err        error
}

func (e *ResponseError) Error() string {
	msg := e.Reason
	if msg == "" {
		msg = fmt.Sprintf("API error: status=%s, status_code=%d", e.Status, e.StatusCode)
		if len(e.Messages) > 0 {
			msg = fmt.Sprintf("%s, messages=%v", msg, e.Messages)
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the decode failure, if any.
func (e *ResponseError) Unwrap() error { return e.Err }

// decodeError wraps a payload decode failure for one data call.
func decodeError(env *Envelope, path string, err error) error {
	return &ResponseError{URL: env.URL, Reason: "decode " + path + " data", Err: err}
}
