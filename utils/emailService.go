package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"arena-app/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Arena Esports <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #0F0F1A; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #E94560; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E94560; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ARENA ESPORTS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Arena Esports. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Arena Esports"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Arena Esports</strong>! Your account has been created.</p>
		<p>Join custom rooms, build your team and compete in tournaments.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Deposit received (pending admin review)
func SendDepositReceivedEmail(email, name string, amount int64) {
	subject := "Deposit Received"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your deposit request of <strong>%s</strong>.</p>
		<p>It is under review and your wallet will be credited once approved.</p>
	`, name, FormatAmount(amount))

	go SendEmail([]string{email}, subject, getEmailTemplate("Deposit Received", body))
}

// 3. Deposit / withdrawal finalized by admin
func SendTransactionFinalizedEmail(email, name string, txnType string, amount int64, approved bool) {
	outcome := "approved"
	if !approved {
		outcome = "rejected"
	}
	subject := fmt.Sprintf("%s %s", strings.Title(strings.ToLower(txnType)), outcome)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your %s of <strong>%s</strong> has been <strong>%s</strong>.</p>
		<p>Check your wallet for the updated balance.</p>
	`, name, strings.ToLower(txnType), FormatAmount(amount), outcome)

	go SendEmail([]string{email}, subject, getEmailTemplate("Transaction Update", body))
}

// 4. Custom room resolved
func SendRoomResolvedEmail(email, name string, won bool, payout int64) {
	subject := "Your match has been resolved"
	var body string
	if won {
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Congratulations! You won the match and <strong>%s</strong> has been credited to your wallet.</p>
		`, name, FormatAmount(payout))
	} else {
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your match has been resolved. Better luck next time!</p>
		`, name)
	}

	go SendEmail([]string{email}, subject, getEmailTemplate("Match Resolved", body))
}

// 5. Team money request
func SendMoneyRequestEmail(email, name, teamName string, amount int64) {
	subject := "Contribution requested: " + teamName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your team <strong>%s</strong> has requested a contribution of <strong>%s</strong>.</p>
		<div class="info-box">
			Approve or reject the request from your team dashboard.
		</div>
	`, name, teamName, FormatAmount(amount))

	go SendEmail([]string{email}, subject, getEmailTemplate("Team Contribution Request", body))
}

// 6. Tournament registration confirmed
func SendRegistrationEmail(email, name, teamName, tournamentName string) {
	subject := "Registration Confirmed: " + tournamentName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your team <strong>%s</strong> is registered for <strong>%s</strong>.</p>
		<p>Check the tournament page for the schedule.</p>
	`, name, teamName, tournamentName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Registration Confirmed", body))
}
