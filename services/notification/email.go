package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"

	"rental-manager/logger"
)

// EmailNotifier sends guest-facing mail through MailerSend. It is
// optional infrastructure: the sync runs fine without it.
type EmailNotifier struct {
	client      *mailersend.Mailersend
	fromName    string
	fromEmail   string
	frontendURL string
}

func NewEmailNotifier(apiKey, fromName, fromEmail, frontendURL string) *EmailNotifier {
	return &EmailNotifier{
		client:      mailersend.NewMailersend(apiKey),
		fromName:    fromName,
		fromEmail:   fromEmail,
		frontendURL: frontendURL,
	}
}

// SendCheckInInvite mails the guest a link to the check-in form page
// for their facility.
func (n *EmailNotifier) SendCheckInInvite(toEmail, guestName, propertyName, propertySlug string, checkInDate time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checkInURL := fmt.Sprintf("%s/check-in/%s", n.frontendURL, propertySlug)

	from := mailersend.From{
		Name:  n.fromName,
		Email: n.fromEmail,
	}

	recipients := []mailersend.Recipient{
		{
			Name:  guestName,
			Email: toEmail,
		},
	}

	text := fmt.Sprintf(
		"Hello %s,\n\nYour stay at %s starts on %s. Please fill in the guest registration form before arrival:\n\n%s\n",
		guestName, propertyName, checkInDate.Format("2006-01-02"), checkInURL,
	)

	message := n.client.Email.NewMessage()
	message.SetFrom(from)
	message.SetRecipients(recipients)
	message.SetSubject(fmt.Sprintf("Guest registration for your stay at %s", propertyName))
	message.SetText(text)

	res, err := n.client.Email.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Check-in invite sent. Message ID: " + res.Header.Get("X-Message-Id"))
	return nil
}
