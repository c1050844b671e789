package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"flight_panel/internal/audit"
	"flight_panel/internal/models"
	"flight_panel/internal/store"

	"github.com/fatih/color"
)

// errExit unwinds the menu loops when the operator picks Exit
var errExit = errors.New("exit requested")

// Recorder receives the result of every query and mutation
type Recorder interface {
	Record(e audit.Entry)
}

// Options configures a Panel
type Options struct {
	Location *time.Location // timestamps typed by the operator are read in this location
	Color    bool
}

// Panel is the interactive menu driver over a flight store
type Panel struct {
	store    *store.Store
	recorder Recorder
	in       *bufio.Scanner
	out      io.Writer
	location *time.Location

	prompt  *color.Color
	failure *color.Color
	success *color.Color
}

// New creates a panel reading operator input from in and writing to out
func New(s *store.Store, recorder Recorder, in io.Reader, out io.Writer, opts Options) *Panel {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	p := &Panel{
		store:    s,
		recorder: recorder,
		in:       bufio.NewScanner(in),
		out:      out,
		location: loc,
		prompt:   color.New(color.FgCyan),
		failure:  color.New(color.FgRed),
		success:  color.New(color.FgYellow),
	}
	if !opts.Color {
		p.prompt.DisableColor()
		p.failure.DisableColor()
		p.success.DisableColor()
	}
	return p
}

// Run drives the main menu until the operator exits or input ends
func (p *Panel) Run() error {
	for {
		choice, err := p.choose("MAIN MENU", []string{
			"Flights information",
			"Edit the flights",
			"Search the flights",
			"Emergency information",
			"Exit",
		})
		if err == nil {
			switch choice {
			case 1:
				err = p.informationMenu()
			case 2:
				err = p.editMenu()
			case 3:
				err = p.searchMenu()
			case 4:
				err = p.emergencyMenu()
			case 5:
				err = errExit
			}
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, errInputClosed):
			slog.Info("Operator input closed, leaving panel")
			return nil
		default:
			return err
		}
	}
}

// submenu loops over a menu whose last two options are "Return to the main menu" and "Exit"
func (p *Panel) submenu(title string, actions []string, run func(choice int) error) error {
	options := append(append([]string{}, actions...), "Return to the main menu", "Exit")
	for {
		choice, err := p.choose(title, options)
		if err != nil {
			return err
		}
		switch choice {
		case len(actions) + 1:
			return nil
		case len(actions) + 2:
			return errExit
		default:
			if err := run(choice); err != nil {
				return err
			}
		}
	}
}

func (p *Panel) informationMenu() error {
	return p.submenu("FLIGHT INFORMATION PANEL", []string{
		"All flights",
		"Departures information",
		"Arrivals information",
	}, func(choice int) error {
		switch choice {
		case 1:
			p.show("ALL FLIGHTS", p.store.All(), "No flights were found")
		case 2:
			p.show("DEPARTURES", p.store.Departures(), "No flights were found")
		case 3:
			p.show("ARRIVALS", p.store.Arrivals(), "No flights were found")
		}
		return nil
	})
}

func (p *Panel) editMenu() error {
	return p.submenu("EDIT THE FLIGHTS", []string{
		"Add new flight",
		"Edit flight",
		"Delete flight",
	}, func(choice int) error {
		switch choice {
		case 1:
			return p.addFlight()
		case 2:
			return p.editFlight()
		default:
			return p.deleteFlight()
		}
	})
}

func (p *Panel) searchMenu() error {
	return p.submenu("SEARCH THE FLIGHTS", []string{
		"Search by flight number",
		"Search by departure time",
		"Search by arrival time",
		"Search by departure port",
		"Search by arrival port",
		"Search by time and departure/arrival port",
	}, func(choice int) error {
		switch choice {
		case 1:
			return p.searchNumber()
		case 2:
			return p.searchDepartureTime()
		case 3:
			return p.searchArrivalTime()
		case 4:
			return p.searchDeparturePort()
		case 5:
			return p.searchArrivalPort()
		default:
			return p.searchRoute()
		}
	})
}

func (p *Panel) emergencyMenu() error {
	return p.submenu("EMERGENCY INFORMATION", []string{
		"Fire",
		"Evacuation",
	}, func(choice int) error {
		if choice == 1 {
			p.notice("FIRE", fireInstructions)
		} else {
			p.notice("EVACUATION", evacuationInstructions)
		}
		return nil
	})
}

const (
	fireInstructions = "Stay calm. Leave the building by the nearest marked exit, do not use the lifts " +
		"and follow the instructions of airport staff."
	evacuationInstructions = "Leave your luggage behind and proceed to the assembly point shown on the " +
		"evacuation plans. Follow the instructions of airport staff."
)

// show renders a result table and records it
func (p *Panel) show(title string, flights []models.Flight, emptyMessage string) {
	fmt.Fprintf(p.out, "\n%s\n\n", title)
	fmt.Fprintln(p.out, models.Caption())
	fmt.Fprintln(p.out)

	entry := audit.Entry{Title: title, Flights: flights}
	if len(flights) == 0 {
		fmt.Fprintln(p.out, emptyMessage)
		entry.Message = emptyMessage
	}
	for _, f := range flights {
		fmt.Fprintln(p.out, f.String())
	}
	p.recorder.Record(entry)
}

// notice shows and records a block of plain text
func (p *Panel) notice(title, text string) {
	fmt.Fprintf(p.out, "\n%s\n\n%s\n", title, text)
	p.recorder.Record(audit.Entry{Title: title, Message: text})
}
