package messaging

import (
	"errors"
	"time"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *MessagingDBService) AddToOutgoingEmails(email messagingTypes.OutgoingEmail) (messagingTypes.OutgoingEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if email.AddedAt <= 0 {
		email.AddedAt = time.Now().Unix()
	}

	res, err := dbService.collectionOutgoingEmails().InsertOne(ctx, email)
	if err != nil {
		return email, err
	}
	email.ID = res.InsertedID.(primitive.ObjectID)
	return email, nil
}

// GetOutgoingEmailsForSending claims up to batchSize queued emails whose
// last send attempt is older than the lock threshold. Claiming bumps
// lastSendAttempt, so concurrent job runs do not pick the same message.
func (dbService *MessagingDBService) GetOutgoingEmailsForSending(lockedUntil int64, batchSize int) ([]messagingTypes.OutgoingEmail, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"lastSendAttempt": bson.M{"$lt": lockedUntil}}

	rd := options.After
	opts := options.FindOneAndUpdateOptions{
		ReturnDocument: &rd,
	}

	emails := []messagingTypes.OutgoingEmail{}
	for len(emails) < batchSize {
		var email messagingTypes.OutgoingEmail
		err := dbService.collectionOutgoingEmails().FindOneAndUpdate(
			ctx,
			filter,
			bson.M{"$set": bson.M{"lastSendAttempt": time.Now().Unix()}},
			&opts,
		).Decode(&email)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				break
			}
			return emails, err
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func (dbService *MessagingDBService) ResetLastSendAttemptForOutgoing(id string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = dbService.collectionOutgoingEmails().UpdateOne(
		ctx,
		bson.M{"_id": _id},
		bson.M{"$set": bson.M{"lastSendAttempt": 0}},
	)
	return err
}

func (dbService *MessagingDBService) DeleteOutgoingEmail(id string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = dbService.collectionOutgoingEmails().DeleteOne(ctx, bson.M{"_id": _id})
	return err
}
