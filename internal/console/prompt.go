package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flight_panel/internal/models"
)

// errInputClosed ends the session when the operator's input reaches EOF
var errInputClosed = errors.New("input closed")

// readLine reads one trimmed line of operator input
func (p *Panel) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// choose shows a numbered menu and loops until a listed option is picked
// The returned choice is 1-based.
func (p *Panel) choose(title string, options []string) (int, error) {
	for {
		p.prompt.Fprintf(p.out, "\n%s\n\n", title)
		for i, opt := range options {
			p.prompt.Fprintf(p.out, "%d - %s\n", i+1, opt)
		}
		fmt.Fprintln(p.out)

		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return n, nil
		}
		p.failure.Fprintln(p.out, "Unknown command. Please, try again.")
	}
}

// askText prompts once and returns the trimmed answer
func (p *Panel) askText(question string) (string, error) {
	fmt.Fprintln(p.out, question)
	return p.readLine()
}

// askValue prompts until parse accepts the answer
func askValue[T any](p *Panel, label, hint string, parse func(string) (T, error)) (T, error) {
	fmt.Fprintf(p.out, "Enter the %s (%s)\n", label, hint)
	for {
		line, err := p.readLine()
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		p.failure.Fprintf(p.out, "Invalid %s. Try again.\n", label)
	}
}

func (p *Panel) askAirline(label string) (models.Airline, error) {
	return askValue(p, label, strings.Join(models.AirlineNames(), ", "), models.ParseAirline)
}

func (p *Panel) askCity(label string) (models.City, error) {
	return askValue(p, label, strings.Join(models.CityNames(), ", "), models.ParseCity)
}

func (p *Panel) askTerminal(label string) (models.Terminal, error) {
	return askValue(p, label, strings.Join(models.TerminalNames(), ", "), models.ParseTerminal)
}

func (p *Panel) askGate(label string) (models.Gate, error) {
	return askValue(p, label, strings.Join(models.GateNames(), ", "), models.ParseGate)
}

func (p *Panel) askStatus(label string) (models.Status, error) {
	return askValue(p, label, strings.Join(models.StatusNames(), ", "), models.ParseStatus)
}

func (p *Panel) askTime(label string) (time.Time, error) {
	return askValue(p, label, "dd.MM.yyyy HH:mm", func(s string) (time.Time, error) {
		return models.ParseTimestamp(s, p.location)
	})
}

// askFlight collects every attribute of a new flight
func (p *Panel) askFlight() (models.Flight, error) {
	var (
		f   models.Flight
		err error
	)
	if f.Number, err = askValue(p, "flight number", "no commas", models.ParseNumber); err != nil {
		return f, err
	}
	if f.Airline, err = p.askAirline("airline"); err != nil {
		return f, err
	}
	if f.Departure, err = p.askTime("departure date"); err != nil {
		return f, err
	}
	if f.Arrival, err = p.askTime("arrival date"); err != nil {
		return f, err
	}
	if f.DeparturePort, err = p.askCity("departure port"); err != nil {
		return f, err
	}
	if f.ArrivalPort, err = p.askCity("arrival port"); err != nil {
		return f, err
	}
	if f.Terminal, err = p.askTerminal("terminal"); err != nil {
		return f, err
	}
	if f.Gate, err = p.askGate("gate"); err != nil {
		return f, err
	}
	if f.Status, err = p.askStatus("flight status"); err != nil {
		return f, err
	}
	return f, nil
}

// askEdit collects the new value for a single field
func (p *Panel) askEdit(field models.Field) (models.FieldEdit, error) {
	if field == models.FieldAll {
		f, err := p.askFlight()
		if err != nil {
			return models.FieldEdit{}, err
		}
		return models.SetAll(f)
	}

	hint := "dd.MM.yyyy HH:mm"
	switch field {
	case models.FieldNumber:
		hint = "no commas"
	case models.FieldAirline:
		hint = strings.Join(models.AirlineNames(), ", ")
	case models.FieldDeparturePort, models.FieldArrivalPort:
		hint = strings.Join(models.CityNames(), ", ")
	case models.FieldTerminal:
		hint = strings.Join(models.TerminalNames(), ", ")
	case models.FieldGate:
		hint = strings.Join(models.GateNames(), ", ")
	case models.FieldStatus:
		hint = strings.Join(models.StatusNames(), ", ")
	}
	label := "new " + strings.ToLower(field.String())
	return askValue(p, label, hint, func(s string) (models.FieldEdit, error) {
		return models.ParseFieldEdit(field, s, p.location)
	})
}
