package domain

type User struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Session is the authenticated dashboard session: the bearer token issued by
// the remote API on login.
type Session struct {
	Token string
}

func (s Session) Valid() bool {
	return s.Token != ""
}
