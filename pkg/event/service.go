package event

import (
	"context"
	"fmt"

	"github.com/evently-app/evently/internal/errdef"
	"github.com/evently-app/evently/pkg/model"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func NewService(eventRepository eventRepository) *Service {
	return &Service{
		repository: eventRepository,
	}
}

type eventRepository interface {
	findAll(ctx context.Context, filter Filter) ([]model.Event, error)
	findById(ctx context.Context, id uint) (*model.Event, error)
	create(ctx context.Context, event *model.Event) error
	save(ctx context.Context, event *model.Event) error
	delete(ctx context.Context, id uint) error
	toggleSave(ctx context.Context, userId uint, eventId uint) (bool, error)
	findSaved(ctx context.Context, userId uint) ([]model.Event, error)
	findCreated(ctx context.Context, userId uint) ([]model.Event, error)
}

type Service struct {
	repository eventRepository
}

func (s Service) FindAll(ctx context.Context, filter Filter) ([]model.Event, error) {
	return s.repository.findAll(ctx, filter)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Event, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.CreatedByID == 0 {
		return nil, fmt.Errorf("event has no creator")
	}
	if event.Image == "" {
		event.Image = model.DefaultEventImage
	}
	event.Slug = makeSlug(event.Title)

	err := s.repository.create(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func makeSlug(title string) string {
	// random suffix keeps slugs of identically titled events unique
	return fmt.Sprintf("%s-%s", slug.Make(title), uuid.NewString()[:8])
}

func (s Service) Update(ctx context.Context, id uint, userId uint, updated *model.Event) (*model.Event, error) {
	event, err := s.authorize(ctx, id, userId)
	if err != nil {
		return nil, err
	}

	event.Title = updated.Title
	event.Description = updated.Description
	event.Date = updated.Date
	event.Time = updated.Time
	event.Location = updated.Location
	event.Address = updated.Address
	event.Category = updated.Category
	event.Price = updated.Price
	event.Capacity = updated.Capacity
	if updated.Image != "" {
		event.Image = updated.Image
	}

	err = s.repository.save(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s Service) Delete(ctx context.Context, id uint, userId uint) error {
	_, err := s.authorize(ctx, id, userId)
	if err != nil {
		return err
	}

	return s.repository.delete(ctx, id)
}

// authorize resolves the event and checks the caller owns it. Existence is checked before
// ownership so a non-owner probing a nonexistent id gets not found, not forbidden.
func (s Service) authorize(ctx context.Context, id uint, userId uint) (*model.Event, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	if !event.IsOwnedBy(userId) {
		return nil, errdef.NewForbidden("only the creator of event %d can modify it", id)
	}

	return event, nil
}

func (s Service) ToggleSave(ctx context.Context, userId uint, eventId uint) (bool, error) {
	return s.repository.toggleSave(ctx, userId, eventId)
}

func (s Service) FindSaved(ctx context.Context, userId uint) ([]model.Event, error) {
	return s.repository.findSaved(ctx, userId)
}

func (s Service) FindCreated(ctx context.Context, userId uint) ([]model.Event, error) {
	return s.repository.findCreated(ctx, userId)
}
