package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned when text does not name a member of a closed set
var ErrUnknownValue = errors.New("unknown value")

// enumTable is the explicit name <-> value map behind each closed enumeration
type enumTable[T ~int] struct {
	kind    string
	names   []string
	aliases map[string]T // lower-cased legacy spellings
	index   map[string]T // lower-cased canonical names
}

func newEnumTable[T ~int](kind string, names []string, aliases map[string]T) *enumTable[T] {
	t := &enumTable[T]{
		kind:    kind,
		names:   names,
		aliases: make(map[string]T, len(aliases)),
		index:   make(map[string]T, len(names)),
	}
	for i, n := range names {
		t.index[strings.ToLower(n)] = T(i)
	}
	for n, v := range aliases {
		t.aliases[strings.ToLower(n)] = v
	}
	return t
}

func (t *enumTable[T]) name(v T) string {
	if int(v) < 0 || int(v) >= len(t.names) {
		return fmt.Sprintf("%s(%d)", t.kind, int(v))
	}
	return t.names[int(v)]
}

func (t *enumTable[T]) parse(s string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if v, ok := t.index[key]; ok {
		return v, nil
	}
	if v, ok := t.aliases[key]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %s %q (must be one of %s)", ErrUnknownValue, t.kind, s, strings.Join(t.names, ", "))
}

func (t *enumTable[T]) valid(v T) bool {
	return int(v) >= 0 && int(v) < len(t.names)
}

func (t *enumTable[T]) list() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Airline is the operating carrier
type Airline int

const (
	OpenAir Airline = iota
	MetroJet
	Airunes
	TransAero
)

var airlines = newEnumTable[Airline]("airline", []string{"OpenAir", "MetroJet", "Airunes", "TransAero"}, nil)

func (a Airline) String() string { return airlines.name(a) }

// Valid reports whether a is a member of the closed set
func (a Airline) Valid() bool { return airlines.valid(a) }

// ParseAirline parses an airline name
func ParseAirline(s string) (Airline, error) { return airlines.parse(s) }

// AirlineNames lists the airline names in declaration order
func AirlineNames() []string { return airlines.list() }

// City is a departure or arrival port
type City int

const (
	Rome City = iota
	Paris
	Berlin
	Melburn
	NewYork
	Kiev
	Lvov
	Kharkov
	London
)

var cities = newEnumTable[City]("city", []string{
	"Rome", "Paris", "Berlin", "Melburn", "NewYork", "Kiev", "Lvov", "Kharkov", "London",
}, nil)

func (c City) String() string { return cities.name(c) }

// Valid reports whether c is a member of the closed set
func (c City) Valid() bool { return cities.valid(c) }

// ParseCity parses a city name
func ParseCity(s string) (City, error) { return cities.parse(s) }

// CityNames lists the city names in declaration order
func CityNames() []string { return cities.list() }

// Terminal is an airport terminal
type Terminal int

const (
	TerminalA Terminal = iota
	TerminalB
	TerminalC
)

var terminals = newEnumTable[Terminal]("terminal", []string{"A", "B", "C"}, nil)

func (t Terminal) String() string { return terminals.name(t) }

// Valid reports whether t is a member of the closed set
func (t Terminal) Valid() bool { return terminals.valid(t) }

// ParseTerminal parses a terminal name
func ParseTerminal(s string) (Terminal, error) { return terminals.parse(s) }

// TerminalNames lists the terminal names in declaration order
func TerminalNames() []string { return terminals.list() }

// Gate is a boarding gate
type Gate int

const (
	G1 Gate = iota
	G2
	G3
	G4
	G5
	G6
)

var gates = newEnumTable[Gate]("gate", []string{"G1", "G2", "G3", "G4", "G5", "G6"}, nil)

func (g Gate) String() string { return gates.name(g) }

// Valid reports whether g is a member of the closed set
func (g Gate) Valid() bool { return gates.valid(g) }

// ParseGate parses a gate name
func ParseGate(s string) (Gate, error) { return gates.parse(s) }

// GateNames lists the gate names in declaration order
func GateNames() []string { return gates.list() }

// Status is the operational state of a flight
type Status int

const (
	CheckIn Status = iota
	GateClosed
	Arrived
	Departed
	Unknown
	Canceled
	Expected
	Delayed
	InFlight
)

// Data files written by older panels spell some statuses with underscores.
var statuses = newEnumTable[Status]("status", []string{
	"CheckIn", "GateClosed", "Arrived", "Departed", "Unknown", "Canceled", "Expected", "Delayed", "InFlight",
}, map[string]Status{
	"Check_in":    CheckIn,
	"Gate_closed": GateClosed,
	"In_flight":   InFlight,
})

func (s Status) String() string { return statuses.name(s) }

// Valid reports whether s is a member of the closed set
func (s Status) Valid() bool { return statuses.valid(s) }

// ArrivalLike reports whether the status belongs on the arrivals board
func (s Status) ArrivalLike() bool {
	return s == Arrived || s == Expected
}

// ParseStatus parses a status name
func ParseStatus(s string) (Status, error) { return statuses.parse(s) }

// StatusNames lists the status names in declaration order
func StatusNames() []string { return statuses.list() }
