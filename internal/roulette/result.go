package roulette

import (
	"errors"
	"fmt"

	"github.com/vmunix/roulette/internal/recommend"
)

// ErrorKind classifies a failed fetch.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorTransport
	ErrorParse
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorTransport:
		return "transport"
	case ErrorParse:
		return "parse"
	default:
		return "none"
	}
}

// Result is the outcome of one fetch: either a recommendation or an error kind.
type Result struct {
	Recommendation *recommend.Recommendation
	Err            error
	Kind           ErrorKind
}

// Ok wraps a successful fetch.
func Ok(rec *recommend.Recommendation) Result {
	return Result{Recommendation: rec}
}

// Fail wraps a failed fetch. The kind is read from the client error.
func Fail(err error) Result {
	if err == nil {
		err = fmt.Errorf("%w: empty response", recommend.ErrParse)
	}
	kind := ErrorTransport
	if errors.Is(err, recommend.ErrParse) {
		kind = ErrorParse
	}
	return Result{Err: err, Kind: kind}
}

// ResultOf maps a client call's return values to a Result.
func ResultOf(rec *recommend.Recommendation, err error) Result {
	if err != nil || rec == nil {
		return Fail(err)
	}
	return Ok(rec)
}
