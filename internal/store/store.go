package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"flight_panel/internal/codec"
	"flight_panel/internal/models"
)

// ErrNotFound is returned when no flight matches a lookup
var ErrNotFound = errors.New("flight not found")

// NotFound is the index FindIndexByNumber reports on a miss
const NotFound = -1

// RouteWindow is the departure window searched by FilterByRoute
const RouteWindow = time.Hour

// LoadPolicy decides what happens to a structurally malformed line
type LoadPolicy string

const (
	PolicyAbort LoadPolicy = "abort" // fail the whole load
	PolicySkip  LoadPolicy = "skip"  // log and drop the line
)

// ParseLoadPolicy validates a policy name
func ParseLoadPolicy(s string) (LoadPolicy, error) {
	switch p := LoadPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyAbort, PolicySkip:
		return p, nil
	default:
		return "", fmt.Errorf("invalid load policy: %s (must be abort or skip)", s)
	}
}

// Store owns the ordered flight collection for a session
// Insertion order is display order. It is not safe for concurrent use.
type Store struct {
	flights []models.Flight
}

// New creates a store holding a copy of flights
func New(flights ...models.Flight) *Store {
	return &Store{flights: slices.Clone(flights)}
}

// LoadOptions configures LoadAll and LoadFile
type LoadOptions struct {
	Decoder *codec.Decoder
	Policy  LoadPolicy
	File    string // reported in decode errors
}

// LoadAll decodes lines into a new store
// Blank lines are ignored. Field diagnostics are logged and decoding continues;
// structural failures follow opts.Policy.
func LoadAll(lines []string, opts LoadOptions) (*Store, error) {
	dec := opts.Decoder
	if dec == nil {
		dec = codec.NewDecoder()
	}

	s := &Store{flights: make([]models.Flight, 0, len(lines))}
	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		f, diags, err := dec.Decode(line)
		if err != nil {
			var decErr *codec.DecodeError
			if errors.As(err, &decErr) {
				decErr.File = opts.File
				decErr.Line = lineNo
			}
			if opts.Policy == PolicySkip {
				slog.Warn("Skipping malformed flight record", "file", opts.File, "line", lineNo, "error", err)
				continue
			}
			return nil, err
		}

		for _, d := range diags {
			slog.Warn("Invalid flight field, using default",
				"file", opts.File,
				"line", lineNo,
				"field", d.Field,
				"value", d.Value,
				"default", d.Default,
			)
		}
		s.flights = append(s.flights, f)
	}

	return s, nil
}

// Len returns the number of flights
func (s *Store) Len() int {
	return len(s.flights)
}

// All returns a copy of every flight in store order
func (s *Store) All() []models.Flight {
	return slices.Clone(s.flights)
}

// At returns the flight at index i
func (s *Store) At(i int) (models.Flight, bool) {
	if i < 0 || i >= len(s.flights) {
		return models.Flight{}, false
	}
	return s.flights[i], true
}

// Add appends a flight; duplicate numbers are allowed
// A number the data file cannot hold is refused with models.ErrInvalidNumber.
func (s *Store) Add(f models.Flight) error {
	number, err := models.ParseNumber(f.Number)
	if err != nil {
		return err
	}
	f.Number = number
	s.flights = append(s.flights, f)
	return nil
}

// FindIndexByNumber returns the index of the first flight whose number equals
// the trimmed input (case-sensitive), or NotFound
func (s *Store) FindIndexByNumber(number string) (int, bool) {
	number = strings.TrimSpace(number)
	for i := range s.flights {
		if s.flights[i].Number == number {
			return i, true
		}
	}
	return NotFound, false
}

// DeleteByNumber removes the first flight with the given number and returns it
func (s *Store) DeleteByNumber(number string) (models.Flight, error) {
	i, ok := s.FindIndexByNumber(number)
	if !ok {
		return models.Flight{}, fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSpace(number))
	}
	removed := s.flights[i]
	s.flights = slices.Delete(s.flights, i, i+1)
	return removed, nil
}

// UpdateField applies edit to the first flight with the given number
func (s *Store) UpdateField(number string, edit models.FieldEdit) error {
	i, ok := s.FindIndexByNumber(number)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSpace(number))
	}
	return s.UpdateAt(i, edit)
}

// UpdateAt applies edit to the flight at index i
// Use it for a sequence of edits that may change the flight number.
func (s *Store) UpdateAt(i int, edit models.FieldEdit) error {
	if i < 0 || i >= len(s.flights) {
		return fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	edit.Apply(&s.flights[i])
	return nil
}

// FilterByStatus returns flights whose status satisfies pred, in store order
func (s *Store) FilterByStatus(pred func(models.Status) bool) []models.Flight {
	return s.filter(func(f models.Flight) bool { return pred(f.Status) })
}

// Departures returns flights for the departures board
func (s *Store) Departures() []models.Flight {
	return s.FilterByStatus(func(st models.Status) bool { return !st.ArrivalLike() })
}

// Arrivals returns flights for the arrivals board
func (s *Store) Arrivals() []models.Flight {
	return s.FilterByStatus(models.Status.ArrivalLike)
}

// FilterByNumber returns every flight with the given number
func (s *Store) FilterByNumber(number string) []models.Flight {
	number = strings.TrimSpace(number)
	return s.filter(func(f models.Flight) bool { return f.Number == number })
}

// FilterByDeparturePort returns every flight leaving city
func (s *Store) FilterByDeparturePort(city models.City) []models.Flight {
	return s.filter(func(f models.Flight) bool { return f.DeparturePort == city })
}

// FilterByArrivalPort returns every flight bound for city
func (s *Store) FilterByArrivalPort(city models.City) []models.Flight {
	return s.filter(func(f models.Flight) bool { return f.ArrivalPort == city })
}

// FilterByDepartureTime returns every flight departing exactly at t
func (s *Store) FilterByDepartureTime(t time.Time) []models.Flight {
	return s.filter(func(f models.Flight) bool { return f.Departure.Equal(t) })
}

// FilterByArrivalTime returns every flight arriving exactly at t
func (s *Store) FilterByArrivalTime(t time.Time) []models.Flight {
	return s.filter(func(f models.Flight) bool { return f.Arrival.Equal(t) })
}

// FilterByRoute returns flights from departure to arrival leaving within
// [windowStart, windowStart+RouteWindow], sorted by departure time
func (s *Store) FilterByRoute(departure, arrival models.City, windowStart time.Time) []models.Flight {
	windowEnd := windowStart.Add(RouteWindow)
	matches := s.filter(func(f models.Flight) bool {
		return f.DeparturePort == departure &&
			f.ArrivalPort == arrival &&
			!f.Departure.Before(windowStart) &&
			!f.Departure.After(windowEnd)
	})
	return SortByDepartureTime(matches)
}

// SortByDepartureTime returns a copy of flights sorted by departure time
// Flights departing at the same instant keep their input order.
func SortByDepartureTime(flights []models.Flight) []models.Flight {
	sorted := slices.Clone(flights)
	slices.SortStableFunc(sorted, func(a, b models.Flight) int {
		return a.Departure.Compare(b.Departure)
	})
	return sorted
}

// SerializeAll encodes every flight in store order
func (s *Store) SerializeAll() []string {
	lines := make([]string, len(s.flights))
	for i, f := range s.flights {
		lines[i] = codec.Encode(f)
	}
	return lines
}

func (s *Store) filter(keep func(models.Flight) bool) []models.Flight {
	out := make([]models.Flight, 0)
	for _, f := range s.flights {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
