package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
	"github.com/oksasatya/thinkel-blog-api/pkg/mailer"
)

// ContactService forwards contact form messages to the site inbox through the
// email queue. Delivery problems never reach the sender.
type ContactService struct {
	Queue   Publisher
	Inbox   string
	Enabled bool
	Logger  *logrus.Logger
}

func NewContactService(queue Publisher, inbox string, enabled bool, logger *logrus.Logger) *ContactService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &ContactService{Queue: queue, Inbox: inbox, Enabled: enabled, Logger: logger}
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return apperr.Validation(MsgContactRequired)
	}

	log := s.Logger.WithFields(logrus.Fields{"name": name, "email": email})
	log.WithField("message", message).Info("contact message received")

	if !s.Enabled || s.Queue == nil || s.Inbox == "" {
		log.Warn("mail delivery not configured, contact message kept in logs only")
		return nil
	}

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Queue.PublishJSON(c, mailer.NewContactJob(s.Inbox, name, email, message)); err != nil {
		log.WithError(err).Warn("contact email enqueue failed")
	}
	return nil
}
