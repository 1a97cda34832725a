package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_EMAIL_TEMPLATES = "email-templates"
	COLLECTION_NAME_OUTGOING_EMAILS = "outgoing-emails"
	COLLECTION_NAME_SENT_EMAILS     = "sent-emails"
)

type MessagingDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
}

func NewMessagingDBService(configs db.DBConfig) (*MessagingDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	messagingDBSc := &MessagingDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := messagingDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for messaging DB", slog.String("error", err.Error()))
		}
	}

	return messagingDBSc, nil
}

func (dbService *MessagingDBService) getDBName() string {
	return dbService.DBNamePrefix + "messageDB"
}

func (dbService *MessagingDBService) collectionEmailTemplates() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_EMAIL_TEMPLATES)
}

func (dbService *MessagingDBService) collectionOutgoingEmails() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_OUTGOING_EMAILS)
}

func (dbService *MessagingDBService) collectionSentEmails() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_SENT_EMAILS)
}

func (dbService *MessagingDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *MessagingDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for messaging DB")

	ctx, cancel := dbService.getContext()
	defer cancel()

	// one template per message type and tenant
	_, err := dbService.collectionEmailTemplates().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "messageType", Value: 1},
				{Key: "tenantId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating index for email templates", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionOutgoingEmails().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{{Key: "lastSendAttempt", Value: 1}},
		},
	)
	if err != nil {
		slog.Error("Error creating index for outgoing emails", slog.String("error", err.Error()))
	}

	return nil
}
