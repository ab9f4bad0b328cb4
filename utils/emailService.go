package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through Sendgrid
func SendEmail(to, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("--- Email skipped (no Sendgrid key) ---\nTo: %s\nSubject: %s\n", to, subject)
		return nil
	}

	from := mail.NewEmail("Medicare Mastery", config.AppConfig.EmailSender)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", to, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	return nil
}

// HTML wrapper for a consistent look across notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1D4ED8; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #111827; line-height: 1.6; }
			.content h2 { color: #1D4ED8; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1D4ED8; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>MEDICARE MASTERY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Medicare Mastery. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Medicare Mastery"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Medicare Mastery</strong>! Your account has been created.</p>
		<p>Enroll to unlock the full course and start with Phase 1.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Proof review decision
func SendProofReviewEmail(email, name string, phaseNumber int, approved bool, reason string) {
	if approved {
		subject := fmt.Sprintf("Your Phase %d exam proof was approved", phaseNumber)
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your exam proof has been <strong>approved</strong>.</p>
			<div class="info-box">
				Phase %d is now within reach: pass the exam simulation if you have not yet, and the next phase unlocks automatically.
			</div>
		`, name, phaseNumber)
		go SendEmail(email, name, subject, getEmailTemplate("Proof Approved", body))
		return
	}

	subject := fmt.Sprintf("Your Phase %d exam proof was rejected", phaseNumber)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately your exam proof was <strong>rejected</strong>.</p>
		<div class="info-box">Reason: %s</div>
		<p>Please upload a new proof from your dashboard.</p>
	`, name, reason)
	go SendEmail(email, name, subject, getEmailTemplate("Proof Rejected", body))
}

// 3. Enrollment confirmation after successful payment
func SendEnrollmentEmail(email, name string) {
	subject := "Enrollment confirmed"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment was received and your access is now active.</p>
		<p>Head to your dashboard to begin Phase 1.</p>
	`, name)

	go SendEmail(email, name, subject, getEmailTemplate("You're In!", body))
}

// 4. Daily digest of pending proof reviews, sent to the admin address
func SendPendingReviewDigest(pendingCount int) {
	subject := fmt.Sprintf("%d exam proof(s) awaiting review", pendingCount)
	body := fmt.Sprintf(`
		<p>There are <strong>%d</strong> uploaded exam proofs waiting for review.</p>
		<p>Please review them from the admin dashboard so students are not blocked.</p>
	`, pendingCount)

	go SendEmail(config.AppConfig.AdminEmail, "Admin", subject, getEmailTemplate("Pending Reviews", body))
}
