package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/validation"
)

// ContactService accepts messages from the public contact form. Messages are logged, not stored.
type ContactService struct {
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewContactService(validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{validator: validate, logger: logger, now: time.Now}
}

// Submit validates the form and records the message.
func (s *ContactService) Submit(ctx context.Context, form dto.ContactForm) (*models.ContactMessage, error) {
	form.Normalize()
	if err := validation.Check(s.validator, form); err != nil {
		return nil, err
	}
	msg := &models.ContactMessage{
		Name:       form.Name,
		Email:      form.Email,
		Subject:    form.Subject,
		Message:    form.Message,
		ReceivedAt: s.now().UTC(),
	}
	s.logger.Info("contact message received",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject),
		zap.Int("length", len(msg.Message)),
	)
	return msg, nil
}
