package models

import (
	"fmt"
	"io"
	"os"
)

const (
	// Increment is the speed gained by a single acceleration.
	Increment = 10
	// Unit is the label printed after the speed.
	Unit = "km/h"
)

// Vehicle is a named car with a speed.
// It is mutated in place and is not safe for concurrent use.
type Vehicle struct {
	Name  string
	Speed int

	out io.Writer
}

// NewVehicle returns a vehicle with the given name and initial speed.
// Neither value is validated.
func NewVehicle(name string, speed int) *Vehicle {
	return &Vehicle{
		Name:  name,
		Speed: speed,
		out:   os.Stdout,
	}
}

// SetOutput sets where status lines are written. A nil writer discards them.
func (v *Vehicle) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	v.out = w
}

// Accelerate increases the speed by Increment and prints the status line.
func (v *Vehicle) Accelerate() {
	v.Speed += Increment
	// Output errors belong to the host environment.
	_, _ = fmt.Fprintln(v.out, v.Status())
}

// Status returns the line printed by Accelerate.
func (v *Vehicle) Status() string {
	return fmt.Sprintf("%s accélère à %d %s", v.Name, v.Speed, Unit)
}
