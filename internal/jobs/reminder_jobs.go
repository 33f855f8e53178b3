package jobs

import (
	"context"

	"asociacion-backend/internal/logger"
)

// SendPaymentReminders nudges applicants whose application was
// approved but whose membership fee is still unpaid.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("send-payment-reminders", func() {
		ctx := context.Background()
		days := jr.config.Scheduler.PaymentReminderDays

		apps, err := jr.store.ApplicationRepository.ListPaymentPendingOlderThan(ctx, days)
		if err != nil {
			logger.Error("Failed to list payment-pending applications", "error", err)
			return
		}

		sent := 0
		for _, app := range apps {
			if err := jr.emailSvc.SendPaymentReminder(ctx, app.Email, app.Name); err != nil {
				logger.Warn("Failed to send payment reminder", "application_id", app.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Payment reminders sent", "candidates", len(apps), "sent", sent)
	})
}

// SendEnrollmentReminders nudges enrollees with pending payment whose
// offering starts within the configured window.
func (jr *JobRunner) SendEnrollmentReminders() {
	jr.runWithRecovery("send-enrollment-reminders", func() {
		ctx := context.Background()
		days := jr.config.Scheduler.EnrollmentReminderDays

		enrs, err := jr.store.EnrollmentRepository.ListPendingForUpcoming(ctx, days)
		if err != nil {
			logger.Error("Failed to list pending enrollments", "error", err)
			return
		}

		sent := 0
		for _, enr := range enrs {
			if err := jr.emailSvc.SendEnrollmentPaymentReminder(ctx, enr.Email, enr.Name, enr.OfferingID); err != nil {
				logger.Warn("Failed to send enrollment reminder", "enrollment_id", enr.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Enrollment reminders sent", "candidates", len(enrs), "sent", sent)
	})
}
