package messaging

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
)

// GetGlobalEmailTemplateByMessageType returns the tenant-independent
// template for a message type.
func (dbService *MessagingDBService) GetGlobalEmailTemplateByMessageType(messageType string) (*messagingTypes.EmailTemplate, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"messageType": messageType, "tenantId": ""}

	var emailTemplate messagingTypes.EmailTemplate
	err := dbService.collectionEmailTemplates().FindOne(ctx, filter).Decode(&emailTemplate)
	if err != nil {
		return nil, err
	}
	return &emailTemplate, nil
}

// GetTenantEmailTemplateByMessageType returns the tenant's override for a
// message type.
func (dbService *MessagingDBService) GetTenantEmailTemplateByMessageType(tenantID string, messageType string) (*messagingTypes.EmailTemplate, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"messageType": messageType, "tenantId": tenantID}

	var emailTemplate messagingTypes.EmailTemplate
	err := dbService.collectionEmailTemplates().FindOne(ctx, filter).Decode(&emailTemplate)
	if err != nil {
		return nil, err
	}
	return &emailTemplate, nil
}

func (dbService *MessagingDBService) SaveEmailTemplate(emailTemplate messagingTypes.EmailTemplate) (messagingTypes.EmailTemplate, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if emailTemplate.ID.IsZero() {
		emailTemplate.ID = primitive.NewObjectID()
	}

	filter := bson.M{
		"messageType": emailTemplate.MessageType,
		"tenantId":    emailTemplate.TenantID,
	}

	upsert := true
	rd := options.After
	opts := options.FindOneAndReplaceOptions{
		Upsert:         &upsert,
		ReturnDocument: &rd,
	}
	elem := messagingTypes.EmailTemplate{}
	err := dbService.collectionEmailTemplates().FindOneAndReplace(
		ctx, filter, emailTemplate, &opts,
	).Decode(&elem)
	return elem, err
}

func (dbService *MessagingDBService) DeleteEmailTemplate(tenantID string, messageType string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"messageType": messageType, "tenantId": tenantID}
	_, err := dbService.collectionEmailTemplates().DeleteOne(ctx, filter)
	return err
}
