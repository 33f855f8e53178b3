package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendApplicationReceived(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nWe have received your membership application. Our staff will review it and get back to you.\n\nBest regards,\nThe Association", name)
	return s.send(email, name, "Membership application received", body)
}

func (s *emailService) SendApplicationDecision(ctx context.Context, email, name string, approved bool, note string) error {
	var subject, body string
	if approved {
		subject = "Membership application approved"
		body = fmt.Sprintf("Hello %s,\n\nYour membership application has been approved. You will receive your credentials once the membership fee payment is confirmed.", name)
	} else {
		subject = "Membership application update"
		body = fmt.Sprintf("Hello %s,\n\nWe are sorry to inform you that your membership application has been rejected.", name)
	}
	if note != "" {
		body += fmt.Sprintf("\n\nNote from the reviewer: %s", note)
	}
	body += "\n\nBest regards,\nThe Association"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendAccountCreated(ctx context.Context, email, name string) error {
	// Credentials are handed over by staff, never emailed.
	body := fmt.Sprintf("Hello %s,\n\nYour member account is ready. Our staff will hand you your initial credentials; please change your password on first login.\n\nBest regards,\nThe Association", name)
	return s.send(email, name, "Welcome to the association", body)
}

func (s *emailService) SendPaymentReminder(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour membership application has been approved but we have not registered your fee payment yet. Your account will be created as soon as the payment is confirmed.\n\nBest regards,\nThe Association", name)
	return s.send(email, name, "Membership fee payment pending", body)
}

func (s *emailService) SendEnrollmentConfirmation(ctx context.Context, email, name, offeringTitle string, amountCents int32) error {
	body := fmt.Sprintf("Hello %s,\n\nYour enrollment in %q is registered. Amount due: %.2f EUR.\n\nBest regards,\nThe Association", name, offeringTitle, float64(amountCents)/100)
	return s.send(email, name, fmt.Sprintf("Enrollment confirmed: %s", offeringTitle), body)
}

func (s *emailService) SendEnrollmentPaymentReminder(ctx context.Context, email, name string, offeringID int32) error {
	body := fmt.Sprintf("Hello %s,\n\nThe activity you enrolled in starts soon and your payment is still pending. Please complete it to keep your seat.\n\nBest regards,\nThe Association", name)
	return s.send(email, name, "Enrollment payment pending", body)
}
