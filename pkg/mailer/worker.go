package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/thinkel-blog-api/pkg/mailer/templates"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ErrMalformedJob marks a payload that can never be delivered and must not be
// requeued.
var ErrMalformedJob = errors.New("malformed email job")

// Worker turns queued jobs into sent e-mails.
type Worker struct {
	sender Sender
	// Defaults are merged into every template's data (AppName, CompanyName...).
	defaults map[string]any
}

func NewWorker(sender Sender, defaults map[string]any) *Worker {
	return &Worker{sender: sender, defaults: defaults}
}

// Handle decodes, renders and sends one queue message. Errors wrapping
// ErrMalformedJob should be dropped; any other error is transient.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	msg, err := w.Render(job)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	return w.sender.Send(ctx, msg)
}

// Render resolves a job into a message, rendering its template if any.
func (w *Worker) Render(job EmailJob) (Message, error) {
	msg := Message{
		To:      strings.TrimSpace(job.To),
		ReplyTo: strings.TrimSpace(job.ReplyTo),
		Subject: job.Subject,
		Text:    job.Text,
		HTML:    job.HTML,
	}
	if msg.To == "" {
		return Message{}, errors.New("missing recipient")
	}
	if job.Template == "" {
		if msg.Text == "" && msg.HTML == "" {
			return Message{}, errors.New("empty body")
		}
		return msg, nil
	}

	data := make(map[string]any, len(w.defaults)+len(job.Data))
	for k, v := range w.defaults {
		data[k] = v
	}
	for k, v := range job.Data {
		data[k] = v
	}
	s, t, h, err := templates.Render(job.Template, data)
	if err != nil {
		return Message{}, err
	}
	msg.Subject, msg.Text, msg.HTML = strings.TrimSpace(s), t, h
	return msg, nil
}
