package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	casdoor "github.com/casdoor/casdoor-go-client"
	"github.com/casdoor/casdoor-go-client/models"
)

// EmailService sends mail through the email provider of the application.
type EmailService struct {
	Client *casdoor.Client
}

// NewEmailService creates an EmailService.
func NewEmailService(c *casdoor.Client) *EmailService {
	return &EmailService{Client: c}
}

// SendEmail sends email to its receivers.
func (s *EmailService) SendEmail(ctx context.Context, email models.Email) error {
	if len(email.Receivers) == 0 {
		return errors.New("at least one receiver is required")
	}

	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("could not encode email: %w", err)
	}

	_, err = casdoor.PostRawBody[any, any](ctx, s.Client, "send-email", nil, string(body))
	return err
}
