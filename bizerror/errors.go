package bizerror

import (
	"errors"
	"net/http"
)

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrForbidden = errors.New("forbidden")

var ErrInvalidParticipant = errors.New("invalid participant")
var ErrAlreadyResolved = errors.New("work item already resolved")
var ErrProcessTerminated = errors.New("process already terminated")
var ErrActivityConflict = errors.New("another activity is still active")

// ErrEscalationExhausted marks that no higher authority level exists.
// It is an internal signal that drives the process to TIMEOUT, never a
// failure surfaced to callers.
var ErrEscalationExhausted = errors.New("escalation exhausted")

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}

func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}

func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}
