package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/evently-app/evently/internal/errdef"
	"github.com/evently-app/evently/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

// Filter restricts an event listing. Zero valued fields impose no restriction.
type Filter struct {
	Category string
	Location string
	Search   string
}

func (r repository) findAll(ctx context.Context, filter Filter) ([]model.Event, error) {
	query := r.db.
		WithContext(ctx).
		Preload("CreatedBy")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var events []model.Event
	err := query.Order("date").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %v", err)
	}

	return events, nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Preload("CreatedBy").
		Preload("Attendees").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find event with id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event with id %d: %v", id, err)
	}
	return event, nil
}

func (r repository) create(ctx context.Context, event *model.Event) error {
	err := r.db.WithContext(ctx).Create(&event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("event %q already exists", event.Slug)
	}
	return err
}

func (r repository) save(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(&event).Error
}

// delete removes the event together with every reference to it. Deleting the saved and attendee
// rows in the same transaction means no user can end up with a dangling saved event id.
func (r repository) delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM saved_events WHERE event_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete saved references of event %d: %v", id, err)
		}
		if err := tx.Exec("DELETE FROM event_attendees WHERE event_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete attendees of event %d: %v", id, err)
		}

		db := tx.Delete(&model.Event{}, id)
		if db.Error != nil {
			return fmt.Errorf("failed to delete event %d: %v", id, db.Error)
		} else if db.RowsAffected < 1 {
			return errdef.NewNotFound("failed to find event with id %d", id)
		}

		return nil
	})
}

// toggleSave flips membership of the event in the user's saved set. Membership is stored as rows
// in the saved_events join table so the flip is a row delete or insert rather than an in-process
// read-modify-write of a list; concurrent toggles serialize on the row.
func (r repository) toggleSave(ctx context.Context, userId uint, eventId uint) (bool, error) {
	var saved bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Event{}).Where("id = ?", eventId).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up event %d: %v", eventId, err)
		}
		if count == 0 {
			return errdef.NewNotFound("failed to find event with id %d", eventId)
		}

		db := tx.Exec("DELETE FROM saved_events WHERE user_id = ? AND event_id = ?", userId, eventId)
		if db.Error != nil {
			return fmt.Errorf("failed to unsave event %d for user %d: %v", eventId, userId, db.Error)
		}
		if db.RowsAffected > 0 {
			saved = false
			return nil
		}

		if err := tx.Exec("INSERT INTO saved_events (user_id, event_id) VALUES (?, ?)", userId, eventId).Error; err != nil {
			return fmt.Errorf("failed to save event %d for user %d: %v", eventId, userId, err)
		}
		saved = true
		return nil
	})
	return saved, err
}

func (r repository) findSaved(ctx context.Context, userId uint) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Joins("JOIN saved_events ON saved_events.event_id = events.id").
		Where("saved_events.user_id = ?", userId).
		Preload("CreatedBy").
		Order("date").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find saved events of user %d: %v", userId, err)
	}
	return events, nil
}

func (r repository) findCreated(ctx context.Context, userId uint) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Where("created_by_id = ?", userId).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events created by user %d: %v", userId, err)
	}
	return events, nil
}
