package utils

import (
	"fmt"
	"log"

	"nexora/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid. Callers that do
// not care about the outcome should call this from a goroutine.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendgridAPIKey == "" {
		log.Printf("Email disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail(cfg.EmailName, cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by all transactional emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0a1d4e; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0a1d4e; line-height: 1.6; }
			.content h2 { color: #0a1d4e; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #f7b731; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #f7b731; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>JOIN NEXORA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Join Nexora. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendVerificationEmail delivers the signup OTP
func SendVerificationEmail(email, name, otp string) {
	subject := "Your Join Nexora Email Verification Code"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your verification code is:</p>
		<div class="info-box"><strong style="font-size:24px;letter-spacing:4px;">%s</strong></div>
		<p>This code will expire in 10 minutes.</p>
	`, name, otp)

	go SendEmail(email, name, subject, body)
}

// SendCourseAccessEmail confirms a new enrollment
func SendCourseAccessEmail(email, name, courseTitle string) {
	subject := "Course Access: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You now have full access to <strong>%s</strong>.</p>
		<p>Head to your dashboard to start the first lesson.</p>
		<a class="btn" href="%s/my-courses">Go to My Courses</a>
	`, name, courseTitle, config.AppConfig.FrontendURL)

	go SendEmail(email, name, subject, body)
}

// SendCourseCompletedEmail fires on the first transition to 100%% progress
func SendCourseCompletedEmail(email, name, courseTitle string) {
	subject := "Congratulations, you finished " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have completed every lesson in <strong>%s</strong>.</p>
		<div class="info-box">You can now request your certificate of achievement from the course page.</div>
	`, name, courseTitle)

	go SendEmail(email, name, subject, body)
}

// SendCertificateEmail delivers the certificate download link
func SendCertificateEmail(email, name, courseTitle, certificateURL string) {
	subject := "Your Certificate for " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your certificate of achievement for <strong>%s</strong> is ready.</p>
		<a class="btn" href="%s">Download Certificate</a>
	`, name, courseTitle, certificateURL)

	go SendEmail(email, name, subject, body)
}
