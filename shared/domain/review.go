package domain

const (
	MinRate = 1
	MaxRate = 5
)

// Review is a customer testimonial. The remote API transports reviews under
// the "legislations" resource name.
type Review struct {
	ID     ID     `json:"id,omitempty"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Rate   int    `json:"rate" validate:"min=1,max=5"`
	Review string `json:"review" validate:"required"`
}

// Stars returns the filled/empty star flags used to render the rating.
func (r Review) Stars() []bool {
	stars := make([]bool, MaxRate)
	for i := range stars {
		stars[i] = i < r.Rate
	}
	return stars
}
