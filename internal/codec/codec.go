package codec

import (
	"fmt"
	"strings"
	"time"

	"flight_panel/internal/models"
)

// Delimiter separates fields in a data file line
const Delimiter = models.FieldSeparator

// FieldCount is the number of ordered fields in a record:
// airline, number, departure, arrival, departure city, arrival city, terminal, gate, status
const FieldCount = 9

// Defaults substituted for unparsable fields
const (
	DefaultAirline       = models.OpenAir
	DefaultDeparturePort = models.Kiev
	DefaultArrivalPort   = models.Berlin
	DefaultTerminal      = models.TerminalA
	DefaultGate          = models.G1
	DefaultStatus        = models.Unknown

	// arrival falls back to this long after the decoder clock
	DefaultArrivalOffset = 2 * time.Hour
)

// DecodeError reports a structurally malformed line
type DecodeError struct {
	File   string // empty when decoding outside a file
	Line   int    // 1-based, 0 when unknown
	Fields int
	Text   string
}

func (e *DecodeError) Error() string {
	where := "line"
	if e.File != "" {
		where = e.File
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	return fmt.Sprintf("malformed flight record at %s: got %d fields, want %d: %q", where, e.Fields, FieldCount, e.Text)
}

// FieldError is a recoverable diagnostic: one field could not be parsed and took its default
type FieldError struct {
	Field   string
	Value   string
	Default string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q, using default %q", e.Field, e.Value, e.Default)
}

// Decoder parses data file lines into flights
type Decoder struct {
	now      func() time.Time
	location *time.Location
}

// Option configures a Decoder
type Option func(*Decoder)

// WithClock sets the clock used for timestamp defaults
func WithClock(now func() time.Time) Option {
	return func(d *Decoder) {
		d.now = now
	}
}

// WithLocation sets the location timestamps are parsed in
func WithLocation(loc *time.Location) Option {
	return func(d *Decoder) {
		d.location = loc
	}
}

// NewDecoder creates a decoder using the wall clock and local time by default
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Location returns the location timestamps are parsed in
func (d *Decoder) Location() *time.Location {
	return d.location
}

// Decode parses one line into a Flight
// Unparsable fields are defaulted and reported as diagnostics; only a line with
// fewer than FieldCount fields fails with *DecodeError.
func (d *Decoder) Decode(line string) (models.Flight, []FieldError, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) < FieldCount {
		return models.Flight{}, nil, &DecodeError{Fields: len(parts), Text: line}
	}

	var diags []FieldError
	report := func(field, value string, def fmt.Stringer) {
		diags = append(diags, FieldError{Field: field, Value: strings.TrimSpace(value), Default: def.String()})
	}

	now := d.now().In(d.location).Truncate(time.Minute)
	f := models.Flight{Number: strings.TrimSpace(parts[1])}
	var err error

	if f.Airline, err = models.ParseAirline(parts[0]); err != nil {
		f.Airline = DefaultAirline
		report("airline", parts[0], f.Airline)
	}
	if f.Departure, err = models.ParseTimestamp(parts[2], d.location); err != nil {
		f.Departure = now
		report("departure date", parts[2], timestamp(f.Departure))
	}
	if f.Arrival, err = models.ParseTimestamp(parts[3], d.location); err != nil {
		f.Arrival = now.Add(DefaultArrivalOffset)
		report("arrival date", parts[3], timestamp(f.Arrival))
	}
	if f.DeparturePort, err = models.ParseCity(parts[4]); err != nil {
		f.DeparturePort = DefaultDeparturePort
		report("departure port", parts[4], f.DeparturePort)
	}
	if f.ArrivalPort, err = models.ParseCity(parts[5]); err != nil {
		f.ArrivalPort = DefaultArrivalPort
		report("arrival port", parts[5], f.ArrivalPort)
	}
	if f.Terminal, err = models.ParseTerminal(parts[6]); err != nil {
		f.Terminal = DefaultTerminal
		report("terminal", parts[6], f.Terminal)
	}
	if f.Gate, err = models.ParseGate(parts[7]); err != nil {
		f.Gate = DefaultGate
		report("gate", parts[7], f.Gate)
	}
	if f.Status, err = models.ParseStatus(parts[8]); err != nil {
		f.Status = DefaultStatus
		report("flight status", parts[8], f.Status)
	}

	if extra := parts[FieldCount:]; len(extra) > 0 {
		diags = append(diags, FieldError{
			Field:   "trailing fields",
			Value:   strings.Join(extra, Delimiter),
			Default: "ignored",
		})
	}

	return f, diags, nil
}

// Encode renders a Flight as a data file line (without line terminator)
func Encode(f models.Flight) string {
	return strings.Join([]string{
		f.Airline.String(),
		f.Number,
		models.FormatTimestamp(f.Departure),
		models.FormatTimestamp(f.Arrival),
		f.DeparturePort.String(),
		f.ArrivalPort.String(),
		f.Terminal.String(),
		f.Gate.String(),
		f.Status.String(),
	}, Delimiter)
}

type timestamp time.Time

func (t timestamp) String() string {
	return models.FormatTimestamp(time.Time(t))
}
