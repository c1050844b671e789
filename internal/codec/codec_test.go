package codec

import (
	"errors"
	"testing"
	"time"

	"flight_panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 9, 30, 42, 0, time.UTC)

func testDecoder() *Decoder {
	return NewDecoder(
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
	)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		checkFunc func(*testing.T, models.Flight, []FieldError, error)
	}{
		{
			name: "valid line",
			line: "MetroJet,MJ-101,01.01.2024 10:00,01.01.2024 12:30,Kiev,Lvov,B,G3,CheckIn",
			checkFunc: func(t *testing.T, f models.Flight, diags []FieldError, err error) {
				require.NoError(t, err)
				assert.Empty(t, diags)
				assert.Equal(t, models.Flight{
					Airline:       models.MetroJet,
					Number:        "MJ-101",
					Departure:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
					Arrival:       time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
					DeparturePort: models.Kiev,
					ArrivalPort:   models.Lvov,
					Terminal:      models.TerminalB,
					Gate:          models.G3,
					Status:        models.CheckIn,
				}, f)
			},
		},
		{
			name: "legacy line with padding and underscored status",
			line: "OpenAir, 77A ,02.01.2024 06:05,02.01.2024 08:00,Paris,Rome, C,G6,In_flight",
			checkFunc: func(t *testing.T, f models.Flight, diags []FieldError, err error) {
				require.NoError(t, err)
				assert.Empty(t, diags)
				assert.Equal(t, "77A", f.Number)
				assert.Equal(t, models.TerminalC, f.Terminal)
				assert.Equal(t, models.InFlight, f.Status)
			},
		},
		{
			name: "every field unparsable falls back to defaults",
			line: "Aeroflot,X1,never,later,Tokyo,Oslo,Z,G9,Boarding",
			checkFunc: func(t *testing.T, f models.Flight, diags []FieldError, err error) {
				require.NoError(t, err)
				require.Len(t, diags, 8)

				now := fixedNow.Truncate(time.Minute)
				assert.Equal(t, models.OpenAir, f.Airline)
				assert.Equal(t, "X1", f.Number)
				assert.Equal(t, now, f.Departure)
				assert.Equal(t, now.Add(2*time.Hour), f.Arrival)
				assert.Equal(t, models.Kiev, f.DeparturePort)
				assert.Equal(t, models.Berlin, f.ArrivalPort)
				assert.Equal(t, models.TerminalA, f.Terminal)
				assert.Equal(t, models.G1, f.Gate)
				assert.Equal(t, models.Unknown, f.Status)

				assert.Equal(t, "airline", diags[0].Field)
				assert.Equal(t, "Aeroflot", diags[0].Value)
				assert.Equal(t, "OpenAir", diags[0].Default)
				assert.Equal(t, "flight status", diags[7].Field)
				assert.Equal(t, "Unknown", diags[7].Default)
			},
		},
		{
			name: "single bad field leaves the rest intact",
			line: "TransAero,TA5,01.01.2024 10:00,01.01.2024 11:00,Kiev,Lvov,A,G7,Delayed",
			checkFunc: func(t *testing.T, f models.Flight, diags []FieldError, err error) {
				require.NoError(t, err)
				require.Len(t, diags, 1)
				assert.Equal(t, "gate", diags[0].Field)
				assert.Equal(t, models.G1, f.Gate)
				assert.Equal(t, models.TransAero, f.Airline)
				assert.Equal(t, models.Delayed, f.Status)
			},
		},
		{
			name: "trailing fields are ignored with a diagnostic",
			line: "MetroJet,MJ1,01.01.2024 10:00,01.01.2024 11:00,Kiev,Lvov,A,G2,Arrived,extra",
			checkFunc: func(t *testing.T, f models.Flight, diags []FieldError, err error) {
				require.NoError(t, err)
				require.Len(t, diags, 1)
				assert.Equal(t, "trailing fields", diags[0].Field)
				assert.Equal(t, models.Arrived, f.Status)
			},
		},
		{
			name: "five fields is a structural error",
			line: "MetroJet,MJ1,01.01.2024 10:00,01.01.2024 11:00,Kiev",
			checkFunc: func(t *testing.T, f models.Flight, diags []FieldError, err error) {
				require.Error(t, err)
				var decErr *DecodeError
				require.True(t, errors.As(err, &decErr))
				assert.Equal(t, 5, decErr.Fields)
				assert.Equal(t, "MetroJet,MJ1,01.01.2024 10:00,01.01.2024 11:00,Kiev", decErr.Text)
				assert.Nil(t, diags)
				assert.Equal(t, models.Flight{}, f)
			},
		},
		{
			name: "empty line is a structural error",
			line: "",
			checkFunc: func(t *testing.T, f models.Flight, diags []FieldError, err error) {
				var decErr *DecodeError
				require.ErrorAs(t, err, &decErr)
				assert.Equal(t, 1, decErr.Fields)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, diags, err := testDecoder().Decode(tt.line)
			tt.checkFunc(t, f, diags, err)
		})
	}
}

func TestDecodeError_Error(t *testing.T) {
	err := &DecodeError{File: "flights.txt", Line: 4, Fields: 5, Text: "a,b,c,d,e"}
	assert.Equal(t, `malformed flight record at flights.txt:4: got 5 fields, want 9: "a,b,c,d,e"`, err.Error())

	err = &DecodeError{Fields: 2, Text: "a,b"}
	assert.Equal(t, `malformed flight record at line: got 2 fields, want 9: "a,b"`, err.Error())
}

func TestFieldError_Error(t *testing.T) {
	err := FieldError{Field: "gate", Value: "G9", Default: "G1"}
	assert.Equal(t, `invalid gate "G9", using default "G1"`, err.Error())
}

func TestEncode(t *testing.T) {
	f := models.Flight{
		Airline:       models.Airunes,
		Number:        "AU 9",
		Departure:     time.Date(2024, 12, 31, 23, 5, 0, 0, time.UTC),
		Arrival:       time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC),
		DeparturePort: models.NewYork,
		ArrivalPort:   models.London,
		Terminal:      models.TerminalC,
		Gate:          models.G5,
		Status:        models.GateClosed,
	}

	assert.Equal(t, "Airunes,AU 9,31.12.2024 23:05,01.01.2025 01:00,NewYork,London,C,G5,GateClosed", Encode(f))
}

func TestRoundTrip_FlightToLine(t *testing.T) {
	dec := testDecoder()
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for i, status := range models.StatusNames() {
		s, err := models.ParseStatus(status)
		require.NoError(t, err)

		f := models.Flight{
			Airline:       models.Airline(i % len(models.AirlineNames())),
			Number:        "RT" + status,
			Departure:     base.Add(time.Duration(i) * 97 * time.Minute),
			Arrival:       base.Add(time.Duration(i) * 131 * time.Minute),
			DeparturePort: models.City(i % len(models.CityNames())),
			ArrivalPort:   models.City((i + 3) % len(models.CityNames())),
			Terminal:      models.Terminal(i % len(models.TerminalNames())),
			Gate:          models.Gate(i % len(models.GateNames())),
			Status:        s,
		}

		decoded, diags, err := dec.Decode(Encode(f))
		require.NoError(t, err)
		assert.Empty(t, diags)
		assert.Equal(t, f, decoded)
	}
}

func TestRoundTrip_LineToFlight(t *testing.T) {
	dec := testDecoder()

	tests := []struct {
		line     string
		expected string
	}{
		{
			line:     "MetroJet,MJ-101,01.01.2024 10:00,01.01.2024 12:30,Kiev,Lvov,B,G3,CheckIn",
			expected: "MetroJet,MJ-101,01.01.2024 10:00,01.01.2024 12:30,Kiev,Lvov,B,G3,CheckIn",
		},
		{
			// dates normalize to the canonical pattern
			line:     "OpenAir,OA1,2024-05-05 07:00,05.05.2024 09:10:00,Rome,Paris, A,G1,Gate_closed",
			expected: "OpenAir,OA1,05.05.2024 07:00,05.05.2024 09:10,Rome,Paris,A,G1,GateClosed",
		},
	}

	for _, tt := range tests {
		f, _, err := dec.Decode(tt.line)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, Encode(f))
	}
}

func TestRoundTrip_AlternateTimestampLayouts(t *testing.T) {
	dec := testDecoder()

	tests := []struct {
		name      string
		departure string
		want      time.Time
	}{
		{"foreign offset", "2024-01-01T10:00:00+05:00", time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)},
		{"seconds", "01.01.2024 10:00:45", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, diags, err := dec.Decode("MetroJet,MJ1," + tt.departure + ",01.01.2024 12:00,Kiev,Lvov,A,G1,CheckIn")
			require.NoError(t, err)
			assert.Empty(t, diags)
			assert.Equal(t, tt.want, f.Departure)

			again, _, err := dec.Decode(Encode(f))
			require.NoError(t, err)
			assert.Equal(t, f, again)
		})
	}
}

func TestNewDecoder_Defaults(t *testing.T) {
	dec := NewDecoder()
	assert.Equal(t, time.Local, dec.Location())
	assert.NotNil(t, dec.now)
}
