package model

import (
	"time"

	"golang.org/x/exp/slices"
)

// Categories an event can be listed under.
var Categories = []string{"Music", "Sports", "Arts", "Food", "Technology", "Business", "Education", "Other"}

// DefaultEventImage is used when an event is created without an image.
const DefaultEventImage = "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=500&auto=format&fit=crop"

// Event domain object defining a listed event
// swagger:model
type Event struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `json:"title"`
	Slug        string    `gorm:"index;unique" json:"slug"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Capacity    *uint     `json:"capacity,omitempty"`
	CreatedByID uint      `json:"createdById"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Attendees   []User    `gorm:"many2many:event_attendees" json:"attendees,omitempty"`
}

// IsOwnedBy reports whether the event was created by the user with the given id.
func (e *Event) IsOwnedBy(userId uint) bool {
	return e.CreatedByID == userId
}

func IsValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}
