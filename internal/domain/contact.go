package domain

import "time"

// ContactMessage is an inbound message from the public contact form. Country
// and Locale are best-effort values detected from the request.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Country   string
	Locale    string
	CreatedAt time.Time
}
