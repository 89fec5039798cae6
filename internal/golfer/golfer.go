package golfer

type ContextKey string

const GolferKey ContextKey = "golfer"

// Golfer holds the contact details a visitor last booked with, remembered in their session
// so the booking form can be prefilled. It is not an account.
type Golfer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Country   string `json:"country,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	SMSOptIn  bool   `json:"sms_opt_in,omitempty"`
}

func (g Golfer) FullName() string {
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
