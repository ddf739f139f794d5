package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcomeTips(toEmail, name string, tips []string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendWelcomeTips mails island tips to a visitor who shared their email.
func (s *emailService) SendWelcomeTips(toEmail, name string, tips []string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Tobago island tips")

	var items strings.Builder
	for _, tip := range tips {
		fmt.Fprintf(&items, "<li>%s</li>", tip)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s!</h2>
			<p>Great chatting with you. Here are a few island tips picked for you:</p>
			<ul>%s</ul>
			<p>Come back and tell me how it went!</p>
		</div>
	`, name, items.String())

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
