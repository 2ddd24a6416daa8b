package cli

import (
	"os"
	"time"

	"smartbook/internal/citytax"
	ierr "smartbook/internal/errors"
	"smartbook/internal/model"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// RuleDoc is a tax rule as written in a taxctl YAML file.
// Dates are YYYY-MM-DD and the rate is a decimal string.
type RuleDoc struct {
	ValidFrom               string `yaml:"valid_from"`
	ValidUntil              string `yaml:"valid_until,omitempty"`
	BaseRatePerNight        string `yaml:"base_rate_per_night"`
	MaxTaxableNights        int    `yaml:"max_taxable_nights"`
	AgeExemptionThreshold   int    `yaml:"age_exemption_threshold"`
	BusDriverRatio          *int   `yaml:"bus_driver_ratio,omitempty"`
	TourGuideExempt         bool   `yaml:"tour_guide_exempt"`
	StructureClassification string `yaml:"structure_classification,omitempty"`
}

type GuestDoc struct {
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Sex         string `yaml:"sex,omitempty"`
	DateOfBirth string `yaml:"date_of_birth"`
	Role        string `yaml:"role"`
}

type BookingDoc struct {
	ID             string     `yaml:"id,omitempty"`
	BookingType    string     `yaml:"booking_type"`
	CheckIn        string     `yaml:"check_in"`
	CheckOut       string     `yaml:"check_out"`
	ExpectedGuests int        `yaml:"expected_guests"`
	Guests         []GuestDoc `yaml:"guests"`
}

// Document is the content of a taxctl input file. A single booking may be
// given under "booking" instead of a "bookings" list.
type Document struct {
	Rules    []RuleDoc    `yaml:"rules"`
	Booking  *BookingDoc  `yaml:"booking,omitempty"`
	Bookings []BookingDoc `yaml:"bookings,omitempty"`
}

// AllBookings returns the single booking followed by the list
func (d Document) AllBookings() []BookingDoc {
	if d.Booking == nil {
		return d.Bookings
	}
	return append([]BookingDoc{*d.Booking}, d.Bookings...)
}

// LoadDocument reads and decodes a taxctl YAML file
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Cannot read %s", path).
			Mark(ierr.ErrNotFound)
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("%s is not a valid taxctl YAML file", path).
			Mark(ierr.ErrValidation)
	}
	return &doc, nil
}

// ToRule converts the document form into a model rule with a fresh ID
func (r RuleDoc) ToRule() (model.TaxRule, error) {
	from, err := citytax.ParseDate(r.ValidFrom)
	if err != nil {
		return model.TaxRule{}, err
	}

	var until *time.Time
	if r.ValidUntil != "" {
		parsed, err := citytax.ParseDate(r.ValidUntil)
		if err != nil {
			return model.TaxRule{}, err
		}
		until = &parsed
	}

	rate, err := citytax.ParseRate(r.BaseRatePerNight)
	if err != nil {
		return model.TaxRule{}, err
	}

	ratio := model.DefaultBusDriverRatio
	if r.BusDriverRatio != nil {
		ratio = *r.BusDriverRatio
	}

	return model.TaxRule{
		ID:                    uuid.New(),
		ValidFrom:             from,
		ValidUntil:            until,
		BaseRatePerNight:      rate,
		MaxTaxableNights:      r.MaxTaxableNights,
		AgeExemptionThreshold: r.AgeExemptionThreshold,
		ExemptionRules: model.ExemptionRules{
			BusDriverRatio:  ratio,
			TourGuideExempt: r.TourGuideExempt,
		},
		StructureClassification: r.StructureClassification,
	}, nil
}

// ToBooking converts the document form into a booking and its guests in entry order
func (b BookingDoc) ToBooking() (model.Booking, []model.Guest, error) {
	id := uuid.New()
	if b.ID != "" {
		parsed, err := uuid.Parse(b.ID)
		if err != nil {
			return model.Booking{}, nil, ierr.WithError(err).
				WithHintf("booking id %q is not a UUID", b.ID).
				Mark(ierr.ErrValidation)
		}
		id = parsed
	}

	checkIn, err := citytax.ParseDate(b.CheckIn)
	if err != nil {
		return model.Booking{}, nil, err
	}
	checkOut, err := citytax.ParseDate(b.CheckOut)
	if err != nil {
		return model.Booking{}, nil, err
	}

	expected := b.ExpectedGuests
	if expected == 0 {
		expected = len(b.Guests)
	}

	booking := model.Booking{
		ID:             id,
		BookingType:    b.BookingType,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		ExpectedGuests: expected,
	}

	guests := make([]model.Guest, 0, len(b.Guests))
	for i, g := range b.Guests {
		dob, err := citytax.ParseDate(g.DateOfBirth)
		if err != nil {
			return model.Booking{}, nil, err
		}
		guests = append(guests, model.Guest{
			ID:          uuid.New(),
			BookingID:   id,
			Position:    i,
			Role:        model.GuestRole(g.Role),
			FirstName:   g.FirstName,
			LastName:    g.LastName,
			Sex:         model.Sex(g.Sex),
			DateOfBirth: dob,
		})
	}

	return booking, guests, nil
}

// ToRules converts every rule of the document
func (d Document) ToRules() ([]model.TaxRule, error) {
	rules := make([]model.TaxRule, 0, len(d.Rules))
	for _, r := range d.Rules {
		rule, err := r.ToRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
