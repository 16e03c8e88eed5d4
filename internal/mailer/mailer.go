package mailer

import (
	"fmt"
	"time"

	"github.com/go-mail/mail/v2"
)

// Mailer delivers confirmation codes over SMTP. Callers treat delivery as
// best-effort: a stored code stays valid even when the mail never leaves.
type Mailer struct {
	dialer       *mail.Dialer
	sender       string
	retriesCount int
}

func New(host string, port int, timeout time.Duration, username, password, sender string, retriesCount int) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	return &Mailer{
		dialer:       dialer,
		sender:       sender,
		retriesCount: retriesCount,
	}
}

// SendConfirmationCode mails the registration code to the recipient.
func (m *Mailer) SendConfirmationCode(recipient, code string) error {
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", "Confirm your email")
	msg.SetBody("text/plain", fmt.Sprintf("Your confirmation code: %s", code))

	var err error
	for i := 0; i < m.retriesCount; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}
