package models

// Event describes an activity registrants can sign up for. Events are
// authored out-of-band in the catalog file and never mutated at runtime.
type Event struct {
	Title       string   `json:"title"`
	Contact     string   `json:"contact"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
}

// Registration is a durable record of one sign-up submission. Optional
// fields are pointers so absent values serialize as JSON null.
type Registration struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Subject   *string `json:"subject"`
	Message   *string `json:"message"`
	EventID   *string `json:"eventId"`
	CreatedAt string  `json:"createdAt"`
}
