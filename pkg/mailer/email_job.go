package mailer

import "github.com/oksasatya/thinkel-blog-api/pkg/mailer/templates"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either the raw Subject/Text/HTML trio or a Template with Data is used.
type EmailJob struct {
	To       string         `json:"to"`
	ReplyTo  string         `json:"replyTo,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "contact_message"
	Data     map[string]any `json:"data,omitempty"`
}

// NewContactJob builds the job that forwards a contact form submission to
// inbox. Replies go straight back to the sender.
func NewContactJob(inbox, name, email, message string) EmailJob {
	return EmailJob{
		To:       inbox,
		ReplyTo:  email,
		Template: templates.ContactMessage,
		Data: map[string]any{
			"Name":    name,
			"Email":   email,
			"Message": message,
		},
	}
}
