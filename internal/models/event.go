package models

import (
	"strconv"
	"time"
)

// Event categories as stored. "Arts" used to circulate on the client side as
// an alias of "Art"; NormalizeCategory maps it back before anything is stored
// or matched.
var Categories = []string{
	"Music",
	"Education",
	"Sports",
	"Business",
	"Food",
	"Art",
	"Technology",
	"Other",
}

var categoryAliases = map[string]string{
	"Arts": "Art",
}

// NormalizeCategory resolves aliases and reports whether the result is one of
// the known categories.
func NormalizeCategory(category string) (string, bool) {
	if canonical, ok := categoryAliases[category]; ok {
		category = canonical
	}
	for _, c := range Categories {
		if c == category {
			return c, true
		}
	}
	return category, false
}

type Event struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Title              string    `json:"title" gorm:"not null"`
	Description        string    `json:"description" gorm:"not null"`
	Category           string    `json:"category" gorm:"not null;index"`
	Date               time.Time `json:"date" gorm:"not null;index"`
	Time               string    `json:"time" gorm:"not null"`
	Location           string    `json:"location" gorm:"not null;index"`
	TicketAvailability int       `json:"ticket_availability" gorm:"not null;default:0"`
	TicketPrice        float64   `json:"ticket_price" gorm:"not null;default:0"`
	Image              string    `json:"image"`
	OrganizerID        uint      `json:"-" gorm:"not null;index"`
	Organizer          *User     `json:"-" gorm:"foreignKey:OrganizerID"`
	CreatedAt          time.Time `json:"created_at"`
}

// Organizer is the reference to the user who created an event. Depending on
// how the row was loaded it is either a bare id or expanded with the display
// name; CanonicalID gives the one string form used for identity comparison.
type Organizer struct {
	ID       uint   `json:"id"`
	Name     string `json:"name,omitempty"`
	Expanded bool   `json:"-"`
}

func (o Organizer) CanonicalID() string {
	return strconv.FormatUint(uint64(o.ID), 10)
}

// CanonicalUserID puts a principal id in the same form as Organizer.CanonicalID.
func CanonicalUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// OrganizerRef normalizes the organizer field regardless of whether the
// association was preloaded.
func (e *Event) OrganizerRef() Organizer {
	if e.Organizer != nil && e.Organizer.ID != 0 {
		return Organizer{ID: e.Organizer.ID, Name: e.Organizer.FullName, Expanded: true}
	}
	return Organizer{ID: e.OrganizerID}
}

type EventRequest struct {
	Title              string  `json:"title" validate:"required"`
	Description        string  `json:"description" validate:"required"`
	Category           string  `json:"category" validate:"required,event_category"`
	Date               string  `json:"date" validate:"required"`
	Time               string  `json:"time" validate:"required"`
	Location           string  `json:"location" validate:"required"`
	TicketAvailability int     `json:"ticket_availability" validate:"gte=0"`
	TicketPrice        float64 `json:"ticket_price" validate:"gte=0"`
	Image              string  `json:"image"`
}

// UpdateEventRequest carries only the fields the client actually sent; nil
// means "leave as is".
type UpdateEventRequest struct {
	Title              *string  `json:"title"`
	Description        *string  `json:"description"`
	Category           *string  `json:"category" validate:"omitempty,event_category"`
	Date               *string  `json:"date"`
	Time               *string  `json:"time"`
	Location           *string  `json:"location"`
	TicketAvailability *int     `json:"ticket_availability" validate:"omitempty,gte=0"`
	TicketPrice        *float64 `json:"ticket_price" validate:"omitempty,gte=0"`
	Image              *string  `json:"image"`
}

type EventFilterRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

type EventResponse struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Date               time.Time `json:"date"`
	Time               string    `json:"time"`
	Location           string    `json:"location"`
	TicketAvailability int       `json:"ticket_availability"`
	TicketPrice        float64   `json:"ticket_price"`
	Image              string    `json:"image"`
	Organizer          Organizer `json:"organizer"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		Category:           e.Category,
		Date:               e.Date,
		Time:               e.Time,
		Location:           e.Location,
		TicketAvailability: e.TicketAvailability,
		TicketPrice:        e.TicketPrice,
		Image:              e.Image,
		Organizer:          e.OrganizerRef(),
		CreatedAt:          e.CreatedAt,
	}
}

func NewEventResponses(events []Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, NewEventResponse(&events[i]))
	}
	return responses
}
