package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tms/internal/pkg/errs"
	"tms/internal/pkg/guard"
)

// ErrProblemIsNotConstructed is returned for a zero Problem.
var ErrProblemIsNotConstructed = errs.NewValueIsRequiredError("problem must be created via NewProblem")

// Problem describes a fault reported while an order was processed, for
// example a blocked conveyor or an occupied target slot. Only the most recent
// problem is kept on an order.
type Problem struct { //nolint:recvcheck //using for validation
	message   string
	messageNo int
	occurred  time.Time
	guard     guard.ConstructorGuard
}

// NewProblem creates a Problem. The message is required, the message number
// must not be negative and occurred must be set.
func NewProblem(message string, messageNo int, occurred time.Time) (Problem, error) {
	p := Problem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setMessage(message),
		p.setMessageNo(messageNo),
		p.setOccurred(occurred),
	); err != nil {
		return Problem{}, err
	}

	return p, nil
}

// Validate reports a problem that was not built by NewProblem.
func (p Problem) Validate() error {
	return p.guard.Validate(ErrProblemIsNotConstructed)
}

// Message is the human readable description.
func (p Problem) Message() string { return p.message }

// MessageNo is the numeric problem code.
func (p Problem) MessageNo() int { return p.messageNo }

// Occurred is when the problem was reported.
func (p Problem) Occurred() time.Time { return p.occurred }

func (p Problem) String() string {
	return fmt.Sprintf("Problem(%d: %s)", p.messageNo, p.message)
}

func (p *Problem) setMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errs.NewValueIsRequiredError("problem message")
	}
	p.message = message
	return nil
}

func (p *Problem) setMessageNo(messageNo int) error {
	if messageNo < 0 {
		return errs.NewValueIsInvalidErrorWithCause("problem message number", fmt.Errorf("%d is negative", messageNo))
	}
	p.messageNo = messageNo
	return nil
}

func (p *Problem) setOccurred(occurred time.Time) error {
	if occurred.IsZero() {
		return errs.NewValueIsRequiredError("problem occurrence time")
	}
	p.occurred = occurred
	return nil
}
