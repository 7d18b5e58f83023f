package kinetics

import (
	"errors"
	"fmt"
)

// Domain errors for kinetics operations.
var (
	// ErrNonPositiveTemperature indicates T <= 0 (or NaN/Inf) was supplied.
	ErrNonPositiveTemperature = errors.New("kinetics: temperature must be positive and finite")

	// ErrNonPositiveVolume indicates V <= 0 (or NaN/Inf) was supplied.
	ErrNonPositiveVolume = errors.New("kinetics: volume must be positive and finite")

	// ErrNonPositiveTimestep indicates dt <= 0 (or NaN/Inf) was supplied.
	ErrNonPositiveTimestep = errors.New("kinetics: timestep must be positive and finite")

	// ErrNegativeAmount indicates a step would drive a molar amount below zero.
	ErrNegativeAmount = errors.New("kinetics: step produced a negative amount")

	// ErrDimensionMismatch indicates a vector does not match the network's species count.
	ErrDimensionMismatch = errors.New("kinetics: dimension mismatch with network species")

	// ErrUnknownSpecies indicates a label or index not present in the network.
	ErrUnknownSpecies = errors.New("kinetics: unknown species")

	// ErrInvalidNetwork indicates a malformed network configuration.
	ErrInvalidNetwork = errors.New("kinetics: invalid network")

	// ErrInvalidSpectra indicates a species' peak set is empty, oversized or
	// has a non-positive width or non-finite parameter.
	ErrInvalidSpectra = errors.New("kinetics: invalid spectral parameters")

	// ErrNetworkMismatch indicates an inventory recorded for another network.
	ErrNetworkMismatch = errors.New("kinetics: inventory belongs to another network")
)

// StepError reports which species overshot during an update.
type StepError struct {
	Species string
	Amount  float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v: %s would reach %.6g mol", e.Wrapped, e.Species, e.Amount)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
