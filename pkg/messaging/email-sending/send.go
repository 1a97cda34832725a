package emailsending

import (
	"errors"
	"log/slog"

	messageDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/messaging"
	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	smtpclient "github.com/Scrumease/Scrum-Ease-Web-API/pkg/smtp-client"
)

var (
	smtpClients      *smtpclient.SmtpClients
	messageDBService *messageDB.MessagingDBService

	GlobalTemplateInfos = map[string]interface{}{}
)

func InitMessageSendingVariables(
	smtp *smtpclient.SmtpClients,
	globalTemplateInfos map[string]interface{},
	mdb *messageDB.MessagingDBService,
) {
	smtpClients = smtp
	GlobalTemplateInfos = globalTemplateInfos
	messageDBService = mdb
}

func SendOutgoingEmail(
	outgoing *messagingTypes.OutgoingEmail,
) error {
	if smtpClients == nil {
		return errors.New("smtp clients not initialized")
	}
	return smtpClients.SendMail(
		outgoing.To,
		outgoing.Subject,
		outgoing.Content,
		outgoing.HeaderOverrides,
	)
}

// SendInstantEmailByTemplate attempts a direct SMTP delivery. A failed
// attempt parks the email in the outgoing queue, where the messaging job
// retries it; the rendered message is never lost.
func SendInstantEmailByTemplate(
	tenantID string,
	to []string,
	messageType string,
	lang string,
	payload map[string]interface{},
	useLowPrio bool,
) error {
	outgoingEmail, err := prepOutgoingEmail(
		tenantID,
		messageType,
		lang,
		payload,
		to,
		useLowPrio,
	)
	if err != nil {
		return err
	}

	err = SendOutgoingEmail(outgoingEmail)
	if err != nil {
		slog.Debug("error while sending email", slog.String("error", err.Error()))
		_, errS := messageDBService.AddToOutgoingEmails(*outgoingEmail)
		if errS != nil {
			slog.Error("failed to save outgoing email", slog.String("error", errS.Error()))
			return errS
		}
		slog.Debug("failed to send email but saved to outgoing", slog.String("error", err.Error()))
		return err
	}

	_, err = messageDBService.AddToSentEmails(*outgoingEmail)
	if err != nil {
		slog.Error("failed to save sent email", slog.String("error", err.Error()))
		return err
	}

	return nil
}

// Mailer is the email sender handed to the standup core. With UseQueue set,
// sends only render and enqueue, so request handlers never wait on SMTP; the
// messaging job does the delivery.
type Mailer struct {
	DefaultLanguage string
	UseQueue        bool
}

func (m Mailer) SendTemplatedEmail(tenantID string, to []string, messageType string, payload map[string]interface{}) error {
	if m.UseQueue {
		return QueueEmailByTemplate(tenantID, to, messageType, m.DefaultLanguage, payload, false)
	}
	return SendInstantEmailByTemplate(tenantID, to, messageType, m.DefaultLanguage, payload, false)
}
