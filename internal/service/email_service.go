package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends notification and reminder email via Amazon SES.
// When no from-address is configured the service is created disabled and
// every send becomes a no-op.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// SendNotificationEmail sends a plain-text notification to one recipient
func (s *EmailService) SendNotificationEmail(ctx context.Context, to, subject, body string) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Email disabled, skipping %q to %s", subject, to)
		}
		return nil
	}

	body = body + "\n\n" + s.appBaseURL

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	if s.debug {
		log.Printf("[DEBUG] Sent %q to %s", subject, to)
	}
	return nil
}

// SendStudyReminder sends a reminder listing today's pending plan tasks
func (s *EmailService) SendStudyReminder(ctx context.Context, to, name string, taskTitles []string) error {
	if len(taskTitles) == 0 {
		return nil
	}

	body := fmt.Sprintf("Hi %s,\n\nYou have %d study task(s) due today:\n", name, len(taskTitles))
	for _, title := range taskTitles {
		body += "  - " + title + "\n"
	}

	return s.SendNotificationEmail(ctx, to, "Your study plan for today", body)
}
