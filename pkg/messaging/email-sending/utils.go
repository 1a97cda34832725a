package emailsending

import (
	"encoding/base64"
	"errors"

	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/templates"
	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	"go.mongodb.org/mongo-driver/mongo"
)

func prepOutgoingEmail(
	tenantID string,
	messageType string,
	lang string,
	payload map[string]interface{},
	to []string,
	useLowPrio bool,

) (*messagingTypes.OutgoingEmail, error) {
	if messageDBService == nil {
		return nil, errors.New("messaging db service not initialized")
	}

	// tenant overrides win over the global template of the message type
	templateDef, err := messageDBService.GetTenantEmailTemplateByMessageType(tenantID, messageType)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		templateDef, err = messageDBService.GetGlobalEmailTemplateByMessageType(messageType)
		if err != nil {
			return nil, err
		}
	}

	translation := templates.GetTemplateTranslation(*templateDef, lang)

	decodedTemplate, err := base64.StdEncoding.DecodeString(translation.TemplateDef)
	if err != nil {
		return nil, err
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}
	for k, v := range GlobalTemplateInfos {
		payload[k] = v
	}

	payload["language"] = lang

	templateName := tenantID + messageType + lang
	content, err := templates.ResolveTemplate(
		templateName,
		string(decodedTemplate),
		payload,
	)
	if err != nil {
		return nil, err
	}

	outgoingEmail := messagingTypes.OutgoingEmail{
		MessageType:     messageType,
		TenantID:        tenantID,
		To:              to,
		HeaderOverrides: templateDef.HeaderOverrides,
		Subject:         translation.Subject,
		Content:         content,
		HighPrio:        !useLowPrio,
	}
	return &outgoingEmail, nil
}
