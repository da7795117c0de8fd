package recruit

import (
	"fmt"
)

// ServiceError is returned for every failed exchange with the ranking service:
// transport errors, non-2xx responses and undecodable payloads.
type ServiceError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s: bad status %d: %s", e.Op, e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: bad status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": service error"
	}
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
