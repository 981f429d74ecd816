// Package model contains domain models passed between layers.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is one employee's validated pay inputs. The zero value is valid
// (all amounts zero); any other value must come from NewRecord.
type Record struct {
	id          int
	email       string
	name        string
	department  string
	hoursWorked decimal.Decimal
	hourlyRate  decimal.Decimal
}

// NewRecord validates hours and rate and returns the record.
// Negative hours or rate fail with ErrNegativeValue.
func NewRecord(id int, email, name, department string, hoursWorked, hourlyRate decimal.Decimal) (Record, error) {
	if hoursWorked.IsNegative() {
		return Record{}, fmt.Errorf("%w: hours_worked %s", ErrNegativeValue, hoursWorked)
	}
	if hourlyRate.IsNegative() {
		return Record{}, fmt.Errorf("%w: hourly_rate %s", ErrNegativeValue, hourlyRate)
	}
	return Record{
		id:          id,
		email:       email,
		name:        name,
		department:  department,
		hoursWorked: hoursWorked,
		hourlyRate:  hourlyRate,
	}, nil
}

func (r Record) ID() int                      { return r.id }
func (r Record) Email() string                { return r.email }
func (r Record) Name() string                 { return r.name }
func (r Record) Department() string           { return r.department }
func (r Record) HoursWorked() decimal.Decimal { return r.hoursWorked }
func (r Record) HourlyRate() decimal.Decimal  { return r.hourlyRate }

// Payout is hours worked times hourly rate, unrounded.
func (r Record) Payout() decimal.Decimal {
	return r.hoursWorked.Mul(r.hourlyRate)
}
