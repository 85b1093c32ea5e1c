package email

import (
	"context"
	"fmt"

	"github.com/Taraansh/e-commerce/internal/gateway"
)

// Mailer formats the transactional emails and hands them to the SMTP sender.
type Mailer struct {
	sender Sender
}

func NewMailer(sender Sender) gateway.Mailer {
	return &Mailer{sender: sender}
}

func (m *Mailer) SendVerifyEmail(ctx context.Context, to, name, otp string) error {
	subject := "Verify your email"
	html := fmt.Sprintf(
		"<b>Welcome</b>.<p>OTP for user %s with email %s is <strong>%s</strong>. It expires in 10 minutes.</p>",
		name, to, otp,
	)
	text := fmt.Sprintf("Welcome. Your OTP is %s.", otp)
	return m.sender.Send(ctx, to, subject, html, text)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, tempPassword, loginLink string) error {
	subject := "Reset Your Password"
	html := fmt.Sprintf(
		"<b>Welcome</b>.<p>Please login using the provided password and reset it afterwards.</p><strong>New Password:</strong> %s<br><strong>Login Link:</strong> %s",
		tempPassword, loginLink,
	)
	text := fmt.Sprintf("Your temporary password is %s. Please login and change it.", tempPassword)
	return m.sender.Send(ctx, to, subject, html, text)
}

func (m *Mailer) SendOrderSuccess(ctx context.Context, to, orderID, orderLink string) error {
	subject := "Order Success - Your Orders"
	html := fmt.Sprintf(
		"<b>Thank you for your purchase</b>.<p>Order %s is complete. Your license keys are available at <a href=%q>%s</a>.</p>",
		orderID, orderLink, orderLink,
	)
	text := fmt.Sprintf("Order %s is complete. View it at %s.", orderID, orderLink)
	return m.sender.Send(ctx, to, subject, html, text)
}
