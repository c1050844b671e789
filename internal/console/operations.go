package console

import (
	"errors"
	"fmt"
	"strings"

	"flight_panel/internal/audit"
	"flight_panel/internal/models"
	"flight_panel/internal/store"
)

func (p *Panel) addFlight() error {
	fmt.Fprintln(p.out, "\nADDING")
	f, err := p.askFlight()
	if err != nil {
		return err
	}
	if err := p.store.Add(f); err != nil {
		return err
	}

	message := fmt.Sprintf("The flight number %s was added", f.Number)
	p.success.Fprintf(p.out, "\n%s\n", message)
	p.recorder.Record(audit.Entry{Title: "ADDING", Flights: []models.Flight{f}, Message: message})
	return nil
}

func (p *Panel) deleteFlight() error {
	fmt.Fprintln(p.out, "\nDELETING")
	number, err := p.askText("Enter the flight number")
	if err != nil {
		return err
	}

	removed, err := p.store.DeleteByNumber(number)
	if errors.Is(err, store.ErrNotFound) {
		message := "The flight for deleting wasn't found"
		fmt.Fprintf(p.out, "\n%s\n", message)
		p.recorder.Record(audit.Entry{Title: "DELETING", Message: message})
		return nil
	}
	if err != nil {
		return err
	}

	message := fmt.Sprintf("The flight number %s was deleted", removed.Number)
	p.success.Fprintf(p.out, "\n%s\n", message)
	p.recorder.Record(audit.Entry{Title: "DELETING", Flights: []models.Flight{removed}, Message: message})
	return nil
}

// editFlight locates a flight once and applies single-field edits until the operator saves
func (p *Panel) editFlight() error {
	fmt.Fprintln(p.out, "\nEDITING")
	number, err := p.askText("Enter the flight number")
	if err != nil {
		return err
	}

	index, ok := p.store.FindIndexByNumber(number)
	if !ok {
		message := "The flight for editing wasn't found"
		fmt.Fprintf(p.out, "\n%s\n", message)
		p.recorder.Record(audit.Entry{Title: "EDITING", Message: message})
		return nil
	}

	options := models.FieldNames()
	options = append(options, "Save and return")
	for {
		current, _ := p.store.At(index)
		fmt.Fprintf(p.out, "\n%s\n", current.String())

		choice, err := p.choose("What information would you like to edit?", options)
		if err != nil {
			return err
		}
		if choice == len(options) {
			break
		}

		edit, err := p.askEdit(models.Field(choice - 1))
		if err != nil {
			return err
		}
		if err := p.store.UpdateAt(index, edit); err != nil {
			return err
		}
	}

	edited, _ := p.store.At(index)
	message := fmt.Sprintf("The flight number %s was edited", edited.Number)
	p.success.Fprintf(p.out, "\n%s\n", message)
	p.recorder.Record(audit.Entry{Title: "EDITING", Flights: []models.Flight{edited}, Message: message})
	return nil
}

func (p *Panel) searchNumber() error {
	number, err := p.askText("Enter the flight number")
	if err != nil {
		return err
	}
	p.show(
		fmt.Sprintf("SEARCHING THE FLIGHT WITH NUMBER %s", number),
		p.store.FilterByNumber(number),
		fmt.Sprintf("The flight with number %s wasn't found", number),
	)
	return nil
}

func (p *Panel) searchDepartureTime() error {
	t, err := p.askTime("departure date")
	if err != nil {
		return err
	}
	stamp := models.FormatTimestamp(t)
	p.show(
		fmt.Sprintf("SEARCHING THE FLIGHTS WITH DEPARTURE DATE %s", stamp),
		p.store.FilterByDepartureTime(t),
		fmt.Sprintf("The flights with departure date %s weren't found", stamp),
	)
	return nil
}

func (p *Panel) searchArrivalTime() error {
	t, err := p.askTime("arrival date")
	if err != nil {
		return err
	}
	stamp := models.FormatTimestamp(t)
	p.show(
		fmt.Sprintf("SEARCHING THE FLIGHTS WITH ARRIVAL DATE %s", stamp),
		p.store.FilterByArrivalTime(t),
		fmt.Sprintf("The flights with arrival date %s weren't found", stamp),
	)
	return nil
}

func (p *Panel) searchDeparturePort() error {
	city, err := p.askCity("departure port")
	if err != nil {
		return err
	}
	p.show(
		fmt.Sprintf("SEARCHING THE FLIGHTS WITH DEPARTURE PORT %s", strings.ToUpper(city.String())),
		p.store.FilterByDeparturePort(city),
		fmt.Sprintf("The flights with departure port %s weren't found", city),
	)
	return nil
}

func (p *Panel) searchArrivalPort() error {
	city, err := p.askCity("arrival port")
	if err != nil {
		return err
	}
	p.show(
		fmt.Sprintf("SEARCHING THE FLIGHTS WITH ARRIVAL PORT %s", strings.ToUpper(city.String())),
		p.store.FilterByArrivalPort(city),
		fmt.Sprintf("The flights with arrival port %s weren't found", city),
	)
	return nil
}

// searchRoute lists flights on a route leaving within an hour of the given time
func (p *Panel) searchRoute() error {
	from, err := p.askCity("departure port")
	if err != nil {
		return err
	}
	to, err := p.askCity("arrival port")
	if err != nil {
		return err
	}
	t, err := p.askTime("date")
	if err != nil {
		return err
	}

	window := fmt.Sprintf("%s to %s between %s and %s", from, to,
		t.Format("15:04"), t.Add(store.RouteWindow).Format("15:04"))
	p.show(
		strings.ToUpper("Searching the nearest flights from "+window),
		p.store.FilterByRoute(from, to, t),
		fmt.Sprintf("No flights from %s were found", window),
	)
	return nil
}
