package models

import "fmt"

// ContactRequest represents a contact form submission.
// Whitespace-only values fail the notblank rule registered in handlers.RegisterValidators.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,notblank,max=100"`
	Email   string `json:"email" binding:"required,notblank,email,max=254"`
	Message string `json:"message" binding:"required,notblank,max=5000"`
}

// Subject returns the subject line of the relayed email
func (r *ContactRequest) Subject() string {
	return "New message from " + r.Name
}

// Body returns the plain-text body of the relayed email
func (r *ContactRequest) Body() string {
	return fmt.Sprintf("Email: %s\n\nMessage: %s", r.Email, r.Message)
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
