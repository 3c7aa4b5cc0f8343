package types

import (
	"encoding/json"
	"time"
)

type ErrorKind string

const (
	UpstreamRejected  ErrorKind = "UpstreamRejected"
	DataNotFound      ErrorKind = "DataNotFound"
	MalformedUpstream ErrorKind = "MalformedUpstream"
)

// Result is the public envelope returned by every lookup. On failure Data is
// left zero and Message is rendered in its place.
type Result[T any] struct {
	Success   bool
	TimeStamp int64
	Data      T
	Message   string
	Reason    ErrorKind
	Err       error
}

func Ok[T any](data T, now time.Time) Result[T] {
	return Result[T]{
		Success:   true,
		TimeStamp: now.UnixMilli(),
		Data:      data,
	}
}

func Fail[T any](reason ErrorKind, message string, err error, now time.Time) Result[T] {
	return Result[T]{
		TimeStamp: now.UnixMilli(),
		Message:   message,
		Reason:    reason,
		Err:       err,
	}
}

// Failure builds an envelope for request-level errors that carry no parse reason.
func Failure(message string, now time.Time) Result[any] {
	return Result[any]{
		TimeStamp: now.UnixMilli(),
		Message:   message,
	}
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success   bool  `json:"success"`
			TimeStamp int64 `json:"time_stamp"`
			Data      T     `json:"data"`
		}{true, r.TimeStamp, r.Data})
	}

	return json.Marshal(struct {
		Success   bool      `json:"success"`
		TimeStamp int64     `json:"time_stamp"`
		Data      string    `json:"data"`
		Reason    ErrorKind `json:"reason,omitempty"`
	}{false, r.TimeStamp, r.Message, r.Reason})
}
