package service

import (
	"strings"

	"github.com/localizer/dashboard/shared/domain"
)

func NewReview(storage RecordStorage[domain.Review]) *Records[domain.Review] {
	return NewRecords(storage, func(r *domain.Review) {
		r.ID = ""
		r.Name = strings.TrimSpace(r.Name)
		r.Email = strings.TrimSpace(r.Email)
		r.Review = strings.TrimSpace(r.Review)
	})
}
