package catalogue

import (
	"errors"
	"strings"
)

// Op names a Catalogue Service operation.
type Op string

const (
	OpSearch Op = "search"
	OpUpload Op = "upload"
	OpList   Op = "list"
	OpDelete Op = "delete"
)

// Fallback is the message shown when a failed response carries no text.
func (o Op) Fallback() string {
	switch o {
	case OpSearch:
		return "Search failed"
	case OpUpload:
		return "Upload failed"
	case OpList:
		return "Could not load the catalogue"
	case OpDelete:
		return "Delete failed: unknown error"
	default:
		return "Request failed"
	}
}

// Failure is a failed Catalogue Service outcome: a transport error, a non-2xx
// status, or a success:false payload. Message is safe to show to the user.
type Failure struct {
	Op      Op
	Status  int // zero when the request never got a response
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return string(f.Op) + ": " + f.Message + ": " + f.Err.Error()
	}
	return string(f.Op) + ": " + f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Reason returns the user-facing text for err. A *Failure yields its Message;
// any other error yields the fallback for op.
func Reason(err error, op Op) string {
	var failure *Failure
	if errors.As(err, &failure) && strings.TrimSpace(failure.Message) != "" {
		return failure.Message
	}
	return op.Fallback()
}

// settle is the single place that decides whether a response is a failure.
// Every endpoint goes through it.
func settle(op Op, status int, env envelope, decodeErr error) error {
	ok := status >= 200 && status <= 299
	if ok && decodeErr == nil && env.Success {
		return nil
	}
	message := firstNonEmpty(env.Error, env.Message)
	if message == "" {
		message = op.Fallback()
	}
	failure := &Failure{Op: op, Status: status, Message: message}
	if decodeErr != nil {
		failure.Err = decodeErr
	}
	return failure
}

func transportFailure(op Op, err error) error {
	return &Failure{Op: op, Message: op.Fallback(), Err: err}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
