package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/pkg/errs"
	"tms/internal/pkg/guard"
)

// ErrReportProblemCommandIsNotConstructed is returned for a zero command.
var ErrReportProblemCommandIsNotConstructed = errors.New(
	"ReportProblemCommand must be created via NewReportProblemCommand constructor",
)

// ReportProblemCommand records a problem on an order. A zero occurred time
// means "now" and is filled in by the handler.
type ReportProblemCommand struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	message   string
	messageNo int
	occurred  time.Time

	guard guard.ConstructorGuard
}

// NewReportProblemCommand validates the problem fields. A zero occurred time means now.
func NewReportProblemCommand(
	id kernel.UUID,
	message string,
	messageNo int,
	occurred time.Time,
) (ReportProblemCommand, error) {
	cmd := ReportProblemCommand{
		guard:    guard.NewConstructorGuard(),
		occurred: occurred,
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setMessage(message),
		cmd.setMessageNo(messageNo),
	); err != nil {
		return ReportProblemCommand{}, err
	}

	return cmd, nil
}

// Validate reports a command that was not built by its constructor.
func (c ReportProblemCommand) Validate() error {
	return c.guard.Validate(ErrReportProblemCommandIsNotConstructed)
}

// ID identifies the affected order.
func (c ReportProblemCommand) ID() kernel.UUID { return c.id }

// Message describes the problem.
func (c ReportProblemCommand) Message() string { return c.message }

// MessageNo is the numeric problem code.
func (c ReportProblemCommand) MessageNo() int { return c.messageNo }

// Occurred is when the problem happened.
func (c ReportProblemCommand) Occurred() time.Time { return c.occurred }

func (c *ReportProblemCommand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *ReportProblemCommand) setMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errs.NewValueIsRequiredError("problem message")
	}
	c.message = message
	return nil
}

func (c *ReportProblemCommand) setMessageNo(messageNo int) error {
	if messageNo < 0 {
		return errs.NewValueIsInvalidErrorWithCause("problem message number", fmt.Errorf("%d is negative", messageNo))
	}
	c.messageNo = messageNo
	return nil
}
