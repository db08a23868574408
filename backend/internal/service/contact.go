package service

import (
	"strings"
	"time"

	"github.com/localizer/dashboard/shared/domain"
)

// NewContact stamps new and edited contacts that carry no date with the
// current time.
func NewContact(storage RecordStorage[domain.Contact]) *Records[domain.Contact] {
	return NewRecords(storage, func(c *domain.Contact) {
		c.ID = ""
		c.Name = strings.TrimSpace(c.Name)
		c.Email = strings.TrimSpace(c.Email)
		c.Phone = strings.TrimSpace(c.Phone)
		c.Message = strings.TrimSpace(c.Message)
		if c.Date.IsZero() {
			c.Date = time.Now().UTC()
		}
	})
}
