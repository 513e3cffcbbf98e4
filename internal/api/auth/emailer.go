package auth

import (
	"fmt"
	"net/smtp"
	"os"

	"dreamnest-app/config"
)

func sendMail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", config.APP_URL, token)
	body := fmt.Sprintf("Click the following link to verify your DreamNest account:\n\n%s", link)
	return sendMail(to, "Verify Your DreamNest Account", body)
}

// SendAuthorApplicationEmail notifies the admin address about a new
// author application; no-op when ADMIN_EMAIL is unset.
func SendAuthorApplicationEmail(applicantEmail, penName string) error {
	if config.ADMIN_EMAIL == "" {
		return nil
	}
	body := fmt.Sprintf("New author application from %s (pen name: %s).\nReview it in the admin dashboard: %s/admin/applications", applicantEmail, penName, config.APP_URL)
	return sendMail(config.ADMIN_EMAIL, "New author application", body)
}
