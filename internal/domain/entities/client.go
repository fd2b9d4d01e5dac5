package entities

// Client is the equipment owner. The client registry lives in the main
// application; this service only reads it for referential checks and
// response summaries.
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Technician executes the repair. Same ownership note as Client.
type Technician struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
