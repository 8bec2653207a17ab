package domain

import "time"

// Message is a contact form submission.
type Message struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

// ContactInput is what the public contact form submits. Every field is required.
type ContactInput struct {
	Name    string `form:"name" json:"name" binding:"required,max=100"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Subject string `form:"subject" json:"subject" binding:"required,max=200"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}

func (in ContactInput) Validate() error {
	return Validate(in)
}

func NewMessage(id string, in ContactInput, at time.Time) Message {
	return Message{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Date:    at,
	}
}
