package client

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when command parameters are rejected before any
// request reaches the wire.
var ErrValidation = errors.New("validation error")

// Temperature and speed bounds accepted by the controller.
const (
	// MinTemperatureF is the lowest settable temperature in Fahrenheit.
	MinTemperatureF = 65
	// MaxTemperatureF is the highest settable temperature in Fahrenheit.
	MaxTemperatureF = 104
	// MinSpeedPercent is the lowest settable pump speed.
	MinSpeedPercent = 0
	// MaxSpeedPercent is the highest settable pump speed.
	MaxSpeedPercent = 100
)

func validateTemperature(temp int, param string) error {
	if temp < MinTemperatureF || temp > MaxTemperatureF {
		return fmt.Errorf("%w: %s must be between %d°F and %d°F, got %d°F",
			ErrValidation, param, MinTemperatureF, MaxTemperatureF, temp)
	}
	return nil
}

func validateSpeed(speed int, param string) error {
	if speed < MinSpeedPercent || speed > MaxSpeedPercent {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrValidation, param, MinSpeedPercent, MaxSpeedPercent, speed)
	}
	return nil
}

func validateID(id int, param string) error {
	if id < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %d", ErrValidation, param, id)
	}
	return nil
}

func invalidEnum(param string, value int) error {
	return fmt.Errorf("%w: %s value %d out of range", ErrValidation, param, value)
}
