package retry

import (
	"errors"
	"net"
	"net/http"
	"slices"
	"strings"
	"syscall"
)

// Predicate decides whether the error from the given attempt is retryable.
type Predicate func(err error, attempt int) bool

// statusCoder is satisfied by errors that carry an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

// StatusError is an error carrying an HTTP status code, usable with the
// ServerErrors and HTTPStatus predicates.
type StatusError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Code)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Always retries every error.
func Always(error, int) bool { return true }

// Never retries nothing; the operation runs exactly once.
func Never(error, int) bool { return false }

// NetworkErrors retries timeouts, common connection-level syscall errors,
// and errors whose message mentions "network" or "timeout".
func NetworkErrors(err error, _ int) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, target := range []error{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.EPIPE,
		syscall.ETIMEDOUT,
		syscall.EHOSTUNREACH,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "network") || strings.Contains(msg, "timeout")
}

// ServerErrors retries errors carrying an HTTP 5xx status code.
func ServerErrors(err error, _ int) bool {
	code := statusCode(err)
	return code >= 500 && code <= 599
}

// HTTPStatus retries errors whose HTTP status code is one of the given codes.
func HTTPStatus(codes ...int) Predicate {
	return func(err error, _ int) bool {
		return slices.Contains(codes, statusCode(err))
	}
}

// Errors retries failures matching any of the targets via errors.Is.
func Errors(targets ...error) Predicate {
	return func(err error, _ int) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// Any combines predicates with OR.
func Any(predicates ...Predicate) Predicate {
	return func(err error, attempt int) bool {
		for _, p := range predicates {
			if p(err, attempt) {
				return true
			}
		}
		return false
	}
}

// All combines predicates with AND.
func All(predicates ...Predicate) Predicate {
	return func(err error, attempt int) bool {
		for _, p := range predicates {
			if !p(err, attempt) {
				return false
			}
		}
		return true
	}
}

func statusCode(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}
