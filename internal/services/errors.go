package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the engine.
var (
	ErrProblemNotFound       = errors.New("problem not found")
	ErrGroupNotFound         = errors.New("group not found")
	ErrRecordNotFound        = errors.New("participant record not found")
	ErrAnswerNotFound        = errors.New("answer not found")
	ErrInvalidGroupRef       = errors.New("group reference must set exactly one of id and handle")
	ErrUnknownOption         = errors.New("submitted option is not one of the problem's variants")
	ErrViolationTypeNotFound = errors.New("violation type not found")
	ErrNoNextProblem         = errors.New("problem is the last one in its subject")
)

// ConfigurationError means required seed data (reserved roles, thresholds)
// is missing. The engine cannot resolve roles without it and refuses to run.
type ConfigurationError struct {
	Missing string
	Detail  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: missing %s (%s)", e.Missing, e.Detail)
}

func NewConfigurationError(missing, detail string) *ConfigurationError {
	return &ConfigurationError{Missing: missing, Detail: detail}
}

// IsConfigurationError reports whether err is a seed-data failure.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// ContractError marks a caller bug: the operation was invoked with arguments
// the engine's contract forbids. It should never reach an end user.
type ContractError struct {
	Op     string
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Detail)
}

func NewContractError(op, detail string) *ContractError {
	return &ContractError{Op: op, Detail: detail}
}

// IsContractError reports whether err is a caller contract violation.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}
