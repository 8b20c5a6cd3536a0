package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ss-infotech2024/Event-Finder/internal/models"
	"github.com/ss-infotech2024/Event-Finder/internal/repository"
)

func setupService(t *testing.T) (*EventService, *repository.EventRepository, *repository.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Event{}))

	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	svc := NewEventService(eventRepo, userRepo, 50, zap.NewNop())
	return svc, eventRepo, userRepo
}

func createUser(t *testing.T, userRepo *repository.UserRepository, email string, interests ...string) *models.User {
	t.Helper()

	user := &models.User{
		FullName:  "Test User",
		Email:     email,
		Password:  "hashed",
		Interests: interests,
	}
	require.NoError(t, userRepo.Create(user))
	return user
}

func validRequest() models.EventRequest {
	return models.EventRequest{
		Title:              "Jazz Night",
		Description:        "Smooth jazz downtown",
		Category:           "Music",
		Date:               "2025-06-15",
		Time:               "8:00 PM",
		Location:           "Berlin",
		TicketAvailability: 100,
		TicketPrice:        25,
		Image:              "https://example.com/jazz.jpg",
	}
}

func TestCanMutate(t *testing.T) {
	bare := &models.Event{OrganizerID: 7}
	expanded := &models.Event{Organizer: &models.User{ID: 7, FullName: "Ada"}}

	// Same canonical identity whether or not the reference was expanded.
	assert.True(t, CanMutate(7, bare))
	assert.True(t, CanMutate(7, expanded))

	assert.False(t, CanMutate(8, bare), "different principal")
	assert.False(t, CanMutate(0, bare), "unauthenticated")
	assert.False(t, CanMutate(7, nil), "missing event")
	assert.False(t, CanMutate(7, &models.Event{}), "missing organizer")
}

func TestCreateEventSetsOrganizerAndKeepsValidImage(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	resp, err := svc.CreateEvent(user.ID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.Organizer.ID)
	assert.Equal(t, "Test User", resp.Organizer.Name)
	assert.Equal(t, "https://example.com/jazz.jpg", resp.Image)
}

func TestCreateEventResolvesBadImageBeforePersisting(t *testing.T) {
	svc, eventRepo, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	req := validRequest()
	req.Image = "not a url"

	resp, err := svc.CreateEvent(user.ID, req)
	require.NoError(t, err)

	// The stored row, not just the response, carries the placeholder.
	stored, err := eventRepo.GetByID(resp.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.Image, "placehold.co")
	assert.Contains(t, stored.Image, "text=Jazz+Night")
}

func TestCreateEventNormalizesCategoryAlias(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	req := validRequest()
	req.Category = "Arts"

	resp, err := svc.CreateEvent(user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Art", resp.Category)
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	req := validRequest()
	req.Date = "next tuesday"

	_, err := svc.CreateEvent(user.ID, req)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "date", validationErr.Field)
}

func TestUpdateEventMergesOnlyProvidedFields(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	created, err := svc.CreateEvent(user.ID, validRequest())
	require.NoError(t, err)

	newTitle := "Jazz Night Rescheduled"
	updated, err := svc.UpdateEvent(created.ID, user.ID, models.UpdateEventRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, created.Location, updated.Location)
	assert.Equal(t, created.TicketPrice, updated.TicketPrice)
	assert.Equal(t, created.Image, updated.Image, "image untouched when not supplied")
}

func TestUpdateEventReResolvesSuppliedImage(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	created, err := svc.CreateEvent(user.ID, validRequest())
	require.NoError(t, err)

	badImage := "definitely not an image"
	updated, err := svc.UpdateEvent(created.ID, user.ID, models.UpdateEventRequest{Image: &badImage})
	require.NoError(t, err)
	assert.Contains(t, updated.Image, "placehold.co")
}

func TestUpdateEventForbiddenForNonOrganizer(t *testing.T) {
	svc, _, userRepo := setupService(t)
	organizer := createUser(t, userRepo, "a@example.com")
	stranger := createUser(t, userRepo, "b@example.com")

	created, err := svc.CreateEvent(organizer.ID, validRequest())
	require.NoError(t, err)

	newTitle := "Hijacked"
	_, err = svc.UpdateEvent(created.ID, stranger.ID, models.UpdateEventRequest{Title: &newTitle})
	assert.ErrorIs(t, err, models.ErrNotOrganizer)

	// The record stays untouched.
	current, err := svc.GetEvent(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", current.Title)
}

func TestUpdateEventNotFound(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	newTitle := "Ghost"
	_, err := svc.UpdateEvent(99999, user.ID, models.UpdateEventRequest{Title: &newTitle})
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestDeleteEventByOrganizer(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	created, err := svc.CreateEvent(user.ID, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(created.ID, user.ID))

	_, err = svc.GetEvent(created.ID)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestDeleteEventForbiddenForNonOrganizer(t *testing.T) {
	svc, _, userRepo := setupService(t)
	organizer := createUser(t, userRepo, "a@example.com")
	stranger := createUser(t, userRepo, "b@example.com")

	created, err := svc.CreateEvent(organizer.ID, validRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEvent(created.ID, stranger.ID), models.ErrNotOrganizer)
}

func TestDeleteRaceTreatedAsNotFound(t *testing.T) {
	svc, eventRepo, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	created, err := svc.CreateEvent(user.ID, validRequest())
	require.NoError(t, err)

	// Row vanishes between the load and the mutation.
	_, err = eventRepo.Delete(created.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEvent(created.ID, user.ID), models.ErrEventNotFound)
}

func TestUpdateRaceTreatedAsNotFound(t *testing.T) {
	svc, eventRepo, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	created, err := svc.CreateEvent(user.ID, validRequest())
	require.NoError(t, err)

	// Row vanishes between the load and the mutation.
	_, err = eventRepo.Delete(created.ID)
	require.NoError(t, err)

	newTitle := "Racy"
	_, err = svc.UpdateEvent(created.ID, user.ID, models.UpdateEventRequest{Title: &newTitle})
	assert.ErrorIs(t, err, models.ErrEventNotFound)

	// The delete must not have been undone by the update.
	_, err = svc.GetEvent(created.ID)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestListEventsRejectsMalformedDateFilter(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.ListEvents(models.EventFilterRequest{Date: "yesterday"})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "date", validationErr.Field)
}

func TestListEventsNormalizesCategoryAliasFilter(t *testing.T) {
	svc, _, userRepo := setupService(t)
	user := createUser(t, userRepo, "a@example.com")

	req := validRequest()
	req.Category = "Art"
	req.Title = "Gallery Opening"
	_, err := svc.CreateEvent(user.ID, req)
	require.NoError(t, err)

	events, err := svc.ListEvents(models.EventFilterRequest{Category: "Arts"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Gallery Opening", events[0].Title)
}

func TestRecommendedUsesInterests(t *testing.T) {
	svc, _, userRepo := setupService(t)
	organizer := createUser(t, userRepo, "a@example.com")
	fan := createUser(t, userRepo, "fan@example.com", "Arts")

	musicReq := validRequest()
	_, err := svc.CreateEvent(organizer.ID, musicReq)
	require.NoError(t, err)

	artReq := validRequest()
	artReq.Title = "Gallery Opening"
	artReq.Category = "Art"
	_, err = svc.CreateEvent(organizer.ID, artReq)
	require.NoError(t, err)

	events, err := svc.RecommendedEvents(fan.ID)
	require.NoError(t, err)

	// "Arts" interest normalizes to the stored "Art" category.
	require.Len(t, events, 1)
	assert.Equal(t, "Gallery Opening", events[0].Title)
}

func TestRecommendedFallsBackToTrending(t *testing.T) {
	svc, _, userRepo := setupService(t)
	organizer := createUser(t, userRepo, "a@example.com")
	newcomer := createUser(t, userRepo, "new@example.com")

	for _, title := range []string{"First", "Second", "Third"} {
		req := validRequest()
		req.Title = title
		_, err := svc.CreateEvent(organizer.ID, req)
		require.NoError(t, err)
	}

	events, err := svc.RecommendedEvents(newcomer.ID)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestTrendingCapsAtPageSize(t *testing.T) {
	svc, _, userRepo := setupService(t)
	organizer := createUser(t, userRepo, "a@example.com")

	for i := 0; i < FeaturedPageSize+3; i++ {
		req := validRequest()
		req.Title = time.Now().Add(time.Duration(i) * time.Hour).Format("Event 15:04")
		_, err := svc.CreateEvent(organizer.ID, req)
		require.NoError(t, err)
	}

	events, err := svc.TrendingEvents()
	require.NoError(t, err)
	assert.Len(t, events, FeaturedPageSize)
}
