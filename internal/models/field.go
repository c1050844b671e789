package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FieldSeparator separates the fields of a stored flight line
const FieldSeparator = ","

// ErrInvalidNumber is returned for a flight number that cannot be stored
var ErrInvalidNumber = errors.New("invalid flight number")

// ParseNumber trims a flight number and rejects one the data file cannot hold
func ParseNumber(s string) (string, error) {
	n := strings.TrimSpace(s)
	if strings.Contains(n, FieldSeparator) || strings.ContainsAny(n, "\r\n") {
		return "", fmt.Errorf("%w: %q (must not contain %q or line breaks)", ErrInvalidNumber, s, FieldSeparator)
	}
	return n, nil
}

// DateLayout is the canonical dd.MM.yyyy HH:mm timestamp format of the data file
const DateLayout = "02.01.2006 15:04"

// Alternate layouts accepted on input; output always uses DateLayout
var inputLayouts = []string{
	DateLayout,
	"02.01.2006 15:04:05",
	"02.01.2006",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseTimestamp parses s in loc using the canonical layout or one of the accepted alternates
// The result is expressed in loc and truncated to the minute, so it survives
// a FormatTimestamp / ParseTimestamp round trip unchanged.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc).Truncate(time.Minute), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q (expected dd.MM.yyyy HH:mm)", ErrUnknownValue, s)
}

// FormatTimestamp renders t in DateLayout
func FormatTimestamp(t time.Time) string {
	return t.Format(DateLayout)
}

// Field selects a single editable attribute of a Flight
type Field int

const (
	FieldAirline Field = iota
	FieldNumber
	FieldDeparture
	FieldArrival
	FieldDeparturePort
	FieldArrivalPort
	FieldTerminal
	FieldGate
	FieldStatus
	FieldAll
)

var fields = newEnumTable[Field]("field", []string{
	"Airline", "Number", "Departure Date", "Arrival Date", "Departure Port",
	"Arrival Port", "Terminal", "Gate", "Status", "All information",
}, nil)

func (f Field) String() string { return fields.name(f) }

// Valid reports whether f is a member of the closed set
func (f Field) Valid() bool { return fields.valid(f) }

// FieldNames lists the field names in declaration order
func FieldNames() []string { return fields.list() }

// FieldEdit carries a new value for exactly one field of a Flight
// Build one with the Set* constructors or ParseFieldEdit.
type FieldEdit struct {
	field Field
	value Flight
}

func SetAirline(a Airline) FieldEdit {
	return FieldEdit{field: FieldAirline, value: Flight{Airline: a}}
}

func SetNumber(n string) (FieldEdit, error) {
	number, err := ParseNumber(n)
	if err != nil {
		return FieldEdit{}, err
	}
	return FieldEdit{field: FieldNumber, value: Flight{Number: number}}, nil
}

func SetDeparture(t time.Time) FieldEdit {
	return FieldEdit{field: FieldDeparture, value: Flight{Departure: t}}
}

func SetArrival(t time.Time) FieldEdit {
	return FieldEdit{field: FieldArrival, value: Flight{Arrival: t}}
}

func SetDeparturePort(c City) FieldEdit {
	return FieldEdit{field: FieldDeparturePort, value: Flight{DeparturePort: c}}
}

func SetArrivalPort(c City) FieldEdit {
	return FieldEdit{field: FieldArrivalPort, value: Flight{ArrivalPort: c}}
}

func SetTerminal(t Terminal) FieldEdit {
	return FieldEdit{field: FieldTerminal, value: Flight{Terminal: t}}
}

func SetGate(g Gate) FieldEdit {
	return FieldEdit{field: FieldGate, value: Flight{Gate: g}}
}

func SetStatus(s Status) FieldEdit {
	return FieldEdit{field: FieldStatus, value: Flight{Status: s}}
}

// SetAll replaces every attribute at once
func SetAll(f Flight) (FieldEdit, error) {
	number, err := ParseNumber(f.Number)
	if err != nil {
		return FieldEdit{}, err
	}
	f.Number = number
	return FieldEdit{field: FieldAll, value: f}, nil
}

// Field returns the attribute this edit targets
func (e FieldEdit) Field() Field {
	return e.field
}

// Apply writes the carried value into f
func (e FieldEdit) Apply(f *Flight) {
	switch e.field {
	case FieldAirline:
		f.Airline = e.value.Airline
	case FieldNumber:
		f.Number = e.value.Number
	case FieldDeparture:
		f.Departure = e.value.Departure
	case FieldArrival:
		f.Arrival = e.value.Arrival
	case FieldDeparturePort:
		f.DeparturePort = e.value.DeparturePort
	case FieldArrivalPort:
		f.ArrivalPort = e.value.ArrivalPort
	case FieldTerminal:
		f.Terminal = e.value.Terminal
	case FieldGate:
		f.Gate = e.value.Gate
	case FieldStatus:
		f.Status = e.value.Status
	case FieldAll:
		*f = e.value
	}
}

// ParseFieldEdit builds an edit for field from operator text
// FieldAll cannot be expressed as a single value and is rejected.
func ParseFieldEdit(field Field, text string, loc *time.Location) (FieldEdit, error) {
	switch field {
	case FieldAirline:
		v, err := ParseAirline(text)
		return SetAirline(v), err
	case FieldNumber:
		return SetNumber(text)
	case FieldDeparture:
		v, err := ParseTimestamp(text, loc)
		return SetDeparture(v), err
	case FieldArrival:
		v, err := ParseTimestamp(text, loc)
		return SetArrival(v), err
	case FieldDeparturePort:
		v, err := ParseCity(text)
		return SetDeparturePort(v), err
	case FieldArrivalPort:
		v, err := ParseCity(text)
		return SetArrivalPort(v), err
	case FieldTerminal:
		v, err := ParseTerminal(text)
		return SetTerminal(v), err
	case FieldGate:
		v, err := ParseGate(text)
		return SetGate(v), err
	case FieldStatus:
		v, err := ParseStatus(text)
		return SetStatus(v), err
	default:
		return FieldEdit{}, fmt.Errorf("field %s cannot be set from a single value", field)
	}
}
