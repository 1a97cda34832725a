package messaging

import (
	"time"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (dbService *MessagingDBService) AddToSentEmails(email messagingTypes.OutgoingEmail) (messagingTypes.OutgoingEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()
	email.AddedAt = time.Now().Unix()
	email.Content = ""

	email.ID = primitive.NilObjectID
	res, err := dbService.collectionSentEmails().InsertOne(ctx, email)
	if err != nil {
		return email, err
	}
	email.ID = res.InsertedID.(primitive.ObjectID)
	return email, nil
}
