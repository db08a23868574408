package domain

type CardType string

const (
	CardTypeGovernment CardType = "government"
	CardTypeCompany    CardType = "company"
)

var CardTypes = []CardType{CardTypeGovernment, CardTypeCompany}

func (t CardType) Valid() bool {
	return t == CardTypeGovernment || t == CardTypeCompany
}

// Card is a promotional card shown on the public website.
type Card struct {
	ID           ID       `json:"id,omitempty"`
	Title        string   `json:"title" validate:"required"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Description  string   `json:"description" validate:"required"`
	Link         string   `json:"link,omitempty" validate:"omitempty,url"`
	Badge        string   `json:"badge,omitempty"`
	PreviewURL   string   `json:"preview_url,omitempty"`
	IsComingSoon Flag     `json:"is_coming_soon"`
	Order        int      `json:"order"`
	IsActive     Flag     `json:"is_active"`
	Type         CardType `json:"type" validate:"required,oneof=government company"`
}
