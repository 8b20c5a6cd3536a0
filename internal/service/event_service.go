package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ss-infotech2024/Event-Finder/internal/models"
	"github.com/ss-infotech2024/Event-Finder/internal/repository"
	"github.com/ss-infotech2024/Event-Finder/pkg/images"
)

// Date payloads are accepted as full timestamps or bare calendar days.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// FeaturedPageSize caps the trending and recommended listings.
const FeaturedPageSize = 6

type EventService struct {
	eventRepo    *repository.EventRepository
	userRepo     *repository.UserRepository
	listPageSize int
	logger       *zap.Logger
}

func NewEventService(eventRepo *repository.EventRepository, userRepo *repository.UserRepository, listPageSize int, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		listPageSize: listPageSize,
		logger:       logger,
	}
}

// CanMutate reports whether the principal may update or delete the event.
// It fails closed: no principal, no event or no organizer all mean no.
func CanMutate(principalID uint, event *models.Event) bool {
	if principalID == 0 || event == nil {
		return false
	}
	organizer := event.OrganizerRef()
	if organizer.ID == 0 {
		return false
	}
	return organizer.CanonicalID() == models.CanonicalUserID(principalID)
}

func (s *EventService) ListEvents(req models.EventFilterRequest) ([]models.EventResponse, error) {
	filters := repository.EventFilters{
		Search:   req.Search,
		Location: req.Location,
	}

	if req.Category != "" {
		// Aliases normalize; unknown values simply match nothing.
		category, _ := models.NormalizeCategory(req.Category)
		filters.Category = category
	}

	if req.Date != "" {
		day, err := parseDate(req.Date)
		if err != nil {
			return nil, models.NewValidationError("date", "must be a valid date (YYYY-MM-DD)")
		}
		filters.Date = &day
	}

	events, err := s.eventRepo.Search(filters, s.listPageSize)
	if err != nil {
		s.logger.Error("event search failed", zap.Error(err))
		return nil, err
	}

	return s.withResolvedImages(events), nil
}

func (s *EventService) GetEvent(eventID uint) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrEventNotFound
		}
		s.logger.Error("event lookup failed", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}

	event.Image = images.Resolve(event.Image, event.Category, event.Title)
	response := models.NewEventResponse(event)
	return &response, nil
}

func (s *EventService) CreateEvent(userID uint, req models.EventRequest) (*models.EventResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, models.NewValidationError("date", "must be a valid date (YYYY-MM-DD)")
	}

	category, ok := models.NormalizeCategory(req.Category)
	if !ok {
		return nil, models.NewValidationError("category", "is not a known category")
	}

	event := &models.Event{
		Title:              req.Title,
		Description:        req.Description,
		Category:           category,
		Date:               date,
		Time:               req.Time,
		Location:           req.Location,
		TicketAvailability: req.TicketAvailability,
		TicketPrice:        req.TicketPrice,
		// Resolved before persisting so the stored URL is always valid.
		Image:       images.Resolve(req.Image, category, req.Title),
		OrganizerID: userID,
	}

	created, err := s.eventRepo.Create(event)
	if err != nil {
		s.logger.Error("event create failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	// Reload so the response carries the expanded organizer.
	return s.GetEvent(created.ID)
}

func (s *EventService) UpdateEvent(eventID uint, userID uint, req models.UpdateEventRequest) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}

	if !CanMutate(userID, event) {
		return nil, models.ErrNotOrganizer
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		category, ok := models.NormalizeCategory(*req.Category)
		if !ok {
			return nil, models.NewValidationError("category", "is not a known category")
		}
		event.Category = category
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, models.NewValidationError("date", "must be a valid date (YYYY-MM-DD)")
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.TicketAvailability != nil {
		event.TicketAvailability = *req.TicketAvailability
	}
	if req.TicketPrice != nil {
		event.TicketPrice = *req.TicketPrice
	}
	if req.Image != nil {
		// Only a supplied image is re-resolved; an untouched one stays as is.
		event.Image = images.Resolve(*req.Image, event.Category, event.Title)
	}

	updated, err := s.eventRepo.Update(event)
	if err != nil {
		s.logger.Error("event update failed", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	if !updated {
		// Raced with a delete.
		return nil, models.ErrEventNotFound
	}

	return s.GetEvent(eventID)
}

func (s *EventService) DeleteEvent(eventID uint, userID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrEventNotFound
		}
		return err
	}

	if !CanMutate(userID, event) {
		return models.ErrNotOrganizer
	}

	deleted, err := s.eventRepo.Delete(eventID)
	if err != nil {
		s.logger.Error("event delete failed", zap.Uint("event_id", eventID), zap.Error(err))
		return err
	}
	if !deleted {
		// Raced with another delete.
		return models.ErrEventNotFound
	}
	return nil
}

func (s *EventService) TrendingEvents() ([]models.EventResponse, error) {
	events, err := s.eventRepo.Trending(FeaturedPageSize)
	if err != nil {
		s.logger.Error("trending lookup failed", zap.Error(err))
		return nil, err
	}
	return s.withResolvedImages(events), nil
}

// RecommendedEvents filters by the user's interest categories and falls back
// to the trending listing when none are set.
func (s *EventService) RecommendedEvents(userID uint) ([]models.EventResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	if len(user.Interests) == 0 {
		return s.TrendingEvents()
	}

	interests := make([]string, 0, len(user.Interests))
	for _, interest := range user.Interests {
		category, _ := models.NormalizeCategory(interest)
		interests = append(interests, category)
	}

	events, err := s.eventRepo.ByCategories(interests, FeaturedPageSize)
	if err != nil {
		s.logger.Error("recommended lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.withResolvedImages(events), nil
}

func (s *EventService) Categories() []string {
	return models.Categories
}

func (s *EventService) withResolvedImages(events []models.Event) []models.EventResponse {
	for i := range events {
		events[i].Image = images.Resolve(events[i].Image, events[i].Category, events[i].Title)
	}
	return models.NewEventResponses(events)
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
