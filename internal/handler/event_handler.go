package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ss-infotech2024/Event-Finder/internal/models"
	"github.com/ss-infotech2024/Event-Finder/internal/service"
	"github.com/ss-infotech2024/Event-Finder/pkg/utils"
)

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
		logger:       logger,
	}
}

func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	filters := models.EventFilterRequest{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Date:     c.Query("date"),
		Location: c.Query("location"),
	}

	events, err := h.eventService.ListEvents(filters)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(models.SuccessResponse(events, "Events retrieved successfully"))
}

func (h *EventHandler) GetTrendingEvents(c *fiber.Ctx) error {
	events, err := h.eventService.TrendingEvents()
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(models.SuccessResponse(events, "Trending events retrieved successfully"))
}

func (h *EventHandler) GetRecommendedEvents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	events, err := h.eventService.RecommendedEvents(userID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(models.SuccessResponse(events, "Recommended events retrieved successfully"))
}

func (h *EventHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.eventService.Categories(), "Categories retrieved successfully"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID format"))
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event retrieved successfully"))
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return h.errorResponse(c, err)
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.CreateEvent(userID, req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID format"))
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return h.errorResponse(c, err)
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.UpdateEvent(eventID, userID, req)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID format"))
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.eventService.DeleteEvent(eventID, userID); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event successfully deleted"))
}

// parseEventID rejects malformed identifiers before anything touches the
// store.
func parseEventID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *EventHandler) errorResponse(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(validationErr.Error()))
	case errors.Is(err, models.ErrEventNotFound), errors.Is(err, models.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotOrganizer):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	default:
		h.logger.Error("unhandled event error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Server error"))
	}
}
