package standup

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
	COLLECTION_NAME_FORMS           = "forms"
	COLLECTION_NAME_DAILIES         = "dailies"
	COLLECTION_NAME_PROJECTS        = "projects"
	COLLECTION_NAME_USERS           = "users"
	COLLECTION_NAME_TENANTS         = "tenants"
	COLLECTION_NAME_SUMMARY_MARKERS = "summaryMarkers"
)

type StandupDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
}

func NewStandupDBService(configs db.DBConfig) (*StandupDBService, error) {
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

	standupDBSc := &StandupDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := standupDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for standup DB", slog.String("error", err.Error()))
		}
	}

	return standupDBSc, nil
}

func (dbService *StandupDBService) getDBName() string {
	return dbService.DBNamePrefix + "standupDB"
}

func (dbService *StandupDBService) collectionForms() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_FORMS)
}

func (dbService *StandupDBService) collectionDailies() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_DAILIES)
}

func (dbService *StandupDBService) collectionProjects() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_PROJECTS)
}

func (dbService *StandupDBService) collectionUsers() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_USERS)
}

func (dbService *StandupDBService) collectionTenants() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_TENANTS)
}

func (dbService *StandupDBService) collectionSummaryMarkers() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_SUMMARY_MARKERS)
}

func (dbService *StandupDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *StandupDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for standup DB")

	ctx, cancel := dbService.getContext()
	defer cancel()

	// daily entry uniqueness per (user, tenant, form snapshot, date) is the
	// concurrency-critical invariant: concurrent get-or-create calls must
	// converge on one document.
	_, err := dbService.collectionDailies().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "tenantId", Value: 1},
				{Key: "formSnapshot._id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating unique index for dailies", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionDailies().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "formSnapshot.projectId", Value: 1},
				{Key: "date", Value: 1},
			},
		},
	)
	if err != nil {
		slog.Error("Error creating project/date index for dailies", slog.String("error", err.Error()))
	}

	// summary once per (tenant, project, date)
	_, err = dbService.collectionSummaryMarkers().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "projectId", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		slog.Error("Error creating unique index for summary markers", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionForms().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "projectId", Value: 1},
				{Key: "isCurrentForm", Value: 1},
			},
		},
	)
	if err != nil {
		slog.Error("Error creating index for forms", slog.String("error", err.Error()))
	}

	return nil
}
