package domain

import "time"

// Contact is a message left through the public website. The dashboard only
// displays contacts.
type Contact struct {
	ID      ID        `json:"id"`
	Name    string    `json:"name" validate:"required"`
	Email   string    `json:"email" validate:"required,email"`
	Phone   string    `json:"phone,omitempty"`
	Message string    `json:"message" validate:"required"`
	Date    time.Time `json:"date"`
}

// Initial is the avatar letter shown next to the contact.
func (c Contact) Initial() string {
	for _, r := range c.Name {
		return string([]rune{r})
	}
	return "?"
}
