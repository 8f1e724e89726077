package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail
// creates a disabled service that skips all sends.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.appBaseURL, resetToken)

	subject := "Reset Your ChitraBoard Password"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="background-color: #e0876a; color: white; padding: 20px; text-align: center;">Password Reset Request</h1>
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your ChitraBoard account.</p>
		<p style="text-align: center;">
			<a href="%s" style="display: inline-block; padding: 12px 30px; background-color: #e0876a; color: white; text-decoration: none; border-radius: 5px;">Reset Password</a>
		</p>
		<p>Or copy and paste this link into your browser:</p>
		<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
		<p><strong>This link will expire in 1 hour.</strong></p>
		<p>If you didn't request a password reset, you can safely ignore this email.</p>
	</div>
</body>
</html>
`, toName, resetLink, resetLink)

	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset the password for your ChitraBoard account.

Click the link below to reset your password:
%s

This link will expire in 1 hour.

If you didn't request a password reset, you can safely ignore this email.
`, toName, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendWelcomeEmail sends a welcome email to new therapist and parent
// accounts
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to ChitraBoard!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="background-color: #e0876a; color: white; padding: 20px; text-align: center;">Welcome to ChitraBoard!</h1>
		<p>Hi %s,</p>
		<p>Your ChitraBoard account is ready. ChitraBoard helps you build communication boards, visual schedules and matching activities for the children you work with.</p>
		<ul>
			<li>Build AAC boards and visual schedules from the symbol library</li>
			<li>Create matching activities and assign them to children</li>
			<li>Track each child's progress over time</li>
			<li>Share and find resources in the marketplace</li>
		</ul>
		<p style="text-align: center;">
			<a href="%s/login" style="display: inline-block; padding: 12px 30px; background-color: #e0876a; color: white; text-decoration: none; border-radius: 5px;">Get Started</a>
		</p>
	</div>
</body>
</html>
`, toName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Your ChitraBoard account is ready. ChitraBoard helps you build communication boards, visual schedules and matching activities for the children you work with.

- Build AAC boards and visual schedules from the symbol library
- Create matching activities and assign them to children
- Track each child's progress over time
- Share and find resources in the marketplace

Get started: %s/login
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendAssignmentEmail notifies a parent that new work was assigned to
// their child
func (s *EmailService) SendAssignmentEmail(ctx context.Context, toEmail, toName, childName, activityName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): assignment notice to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("New activity assigned to %s", childName)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="background-color: #e0876a; color: white; padding: 20px; text-align: center;">New Activity Assigned</h1>
		<p>Hi %s,</p>
		<p>The activity <strong>%s</strong> was just assigned to %s.</p>
		<p style="text-align: center;">
			<a href="%s/login" style="display: inline-block; padding: 12px 30px; background-color: #e0876a; color: white; text-decoration: none; border-radius: 5px;">View Progress</a>
		</p>
	</div>
</body>
</html>
`, toName, activityName, childName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

The activity "%s" was just assigned to %s.

View progress: %s/login
`, toName, activityName, childName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
