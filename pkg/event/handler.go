package event

import (
	"context"
	"net/http"
	"time"

	"github.com/evently-app/evently/internal/handler"
	"github.com/evently-app/evently/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{
		eventService: eventService,
	}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	FindAll(ctx context.Context, filter Filter) ([]model.Event, error)
	FindById(ctx context.Context, id uint) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, id uint, userId uint, updated *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id uint, userId uint) error
	ToggleSave(ctx context.Context, userId uint, eventId uint) (bool, error)
	FindSaved(ctx context.Context, userId uint) ([]model.Event, error)
	FindCreated(ctx context.Context, userId uint) ([]model.Event, error)
}

type eventRequest struct {
	Title       string   `json:"title" binding:"required,min=3"`
	Description string   `json:"description" binding:"required,min=10"`
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string   `json:"time" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Category    string   `json:"category" binding:"required,oneOf=Music Sports Arts Food Technology Business Education Other"`
	Image       string   `json:"image" binding:"omitempty,url"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Capacity    *uint    `json:"capacity" binding:"omitempty,gte=1"`
}

func (r eventRequest) toEvent() *model.Event {
	// the date format is enforced by the binding so this can't fail
	date, _ := time.Parse("2006-01-02", r.Date)

	event := &model.Event{
		Title:       r.Title,
		Description: r.Description,
		Date:        date,
		Time:        r.Time,
		Location:    r.Location,
		Address:     r.Address,
		Category:    r.Category,
		Image:       r.Image,
		Capacity:    r.Capacity,
	}
	if r.Price != nil {
		event.Price = *r.Price
	}
	return event
}

// FindAll events
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /events listEvents
	//
	// List events
	//
	// List events, optionally restricted by category, location and free text search
	//
	// responses:
	//   200: []Event
	filter := Filter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}

	events, err := h.eventService.FindAll(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by its id, with creator and attendees resolved
	//
	// responses:
	//   200: Event
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create an event owned by the caller
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Event
	//   400: ValidationError
	//   401: Error
	var request eventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event := request.toEvent()
	event.CreatedByID = user.ID

	created, err := h.eventService.Create(c.Request.Context(), event)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /events/{id} updateEvent
	//
	// Update event
	//
	// Update an event. Only the creator can update it
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: ValidationError
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request eventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), id, user.ID, request.toEvent())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /events/{id} deleteEvent
	//
	// Delete event
	//
	// Delete an event and remove it from every user's saved events. Only the creator can delete it
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	err = h.eventService.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// SaveResponse reports the saved state after a toggle
// swagger:model
type SaveResponse struct {
	Message string `json:"message"`
	Saved   bool   `json:"saved"`
}

// ToggleSave event
func (h Handler) ToggleSave(c *gin.Context) {
	// swagger:route POST /events/{id}/save toggleSaveEvent
	//
	// Toggle save
	//
	// Save the event for the caller, or remove it when already saved
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: SaveResponse
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	saved, err := h.eventService.ToggleSave(c.Request.Context(), user.ID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := "Event removed from saved"
	if saved {
		message = "Event saved successfully"
	}
	c.JSON(http.StatusOK, SaveResponse{Message: message, Saved: saved})
}

// FindSaved events
func (h Handler) FindSaved(c *gin.Context) {
	// swagger:route GET /events/user/saved listSavedEvents
	//
	// List saved events
	//
	// List the caller's saved events
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Event
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.eventService.FindSaved(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// FindCreated events
func (h Handler) FindCreated(c *gin.Context) {
	// swagger:route GET /events/user/created listCreatedEvents
	//
	// List created events
	//
	// List the events created by the caller, newest first
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Event
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.eventService.FindCreated(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}
