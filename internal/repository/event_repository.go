package repository

import (
	"github.com/ss-infotech2024/Event-Finder/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	result := r.db.Create(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("Organizer").First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Search runs a filtered listing, organizer expanded, oldest event date first.
func (r *EventRepository) Search(filters EventFilters, limit int) ([]models.Event, error) {
	var events []models.Event
	query := filters.apply(r.db.Model(&models.Event{})).
		Preload("Organizer").
		Order("date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

// Trending returns the most recently created events.
func (r *EventRepository) Trending(limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Preload("Organizer").
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ByCategories returns upcoming-ordered events in any of the given categories.
func (r *EventRepository) ByCategories(categories []string, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Preload("Organizer").
		Where("category IN ?", categories).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// Update writes the event's current field values and reports whether the row
// still existed. Save would fall back to an insert on zero affected rows and
// resurrect a concurrently deleted event, so this issues a plain UPDATE.
func (r *EventRepository) Update(event *models.Event) (bool, error) {
	// The preloaded organizer association is read-only here.
	result := r.db.Model(&models.Event{}).
		Where("id = ?", event.ID).
		Select("*").
		Omit("Organizer").
		Updates(event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the event and reports whether a row actually went away, so
// callers can treat a lost update/delete race as not-found.
func (r *EventRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Event{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
