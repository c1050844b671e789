package models

import (
	"fmt"
	"strings"
	"time"
)

// Flight represents one scheduled flight on the panel
// Arrival is not required to be after Departure and Number is not unique.
type Flight struct {
	Airline       Airline
	Number        string // Free-text flight number, used as lookup key
	Departure     time.Time
	Arrival       time.Time
	DeparturePort City
	ArrivalPort   City
	Terminal      Terminal
	Gate          Gate
	Status        Status
}

// Fixed-width row layout
const (
	rowFormat     = "%-10s %-12s%-15s%-15s%-10s%-5s-%-15s%-10s%-10s%-15s"
	captionFormat = "%-10s %-12s%-15s%-15s%-10s%-21s%-10s%-10s%-15s"
	rowWidth      = 10 + 1 + 12 + 15 + 15 + 10 + 5 + 1 + 15 + 10 + 10 + 15
)

// Caption returns the column header matching Flight.String rows
func Caption() string {
	header := fmt.Sprintf(captionFormat,
		"Airline", "Flight", "Departure", "Arrival", "Date", "Time", "Terminal", "Gate", "Status")
	return strings.TrimRight(header, " ") + "\n" + strings.Repeat("_", rowWidth)
}

// String renders the flight as a fixed-width panel row
func (f Flight) String() string {
	return fmt.Sprintf(rowFormat,
		f.Airline,
		f.Number,
		f.DeparturePort,
		f.ArrivalPort,
		f.Departure.Format("02.01"),
		f.Departure.Format("15:04"),
		f.Arrival.Format("15:04"),
		f.Terminal,
		f.Gate,
		f.Status,
	)
}

// Equal reports whether two flights hold the same values field by field
// Timestamps are compared as instants.
func (f Flight) Equal(o Flight) bool {
	return f.Airline == o.Airline &&
		f.Number == o.Number &&
		f.Departure.Equal(o.Departure) &&
		f.Arrival.Equal(o.Arrival) &&
		f.DeparturePort == o.DeparturePort &&
		f.ArrivalPort == o.ArrivalPort &&
		f.Terminal == o.Terminal &&
		f.Gate == o.Gate &&
		f.Status == o.Status
}
