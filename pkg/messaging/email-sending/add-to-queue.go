package emailsending

import (
	"log/slog"
)

func QueueEmailByTemplate(
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

	_, err = messageDBService.AddToOutgoingEmails(*outgoingEmail)
	if err != nil {
		slog.Error("failed to save outgoing email", slog.String("error", err.Error()))
		return err
	}
	return nil
}
