package standup

import (
	"errors"
	"time"

	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrCreateDailyEntry fetches the entry for the (user, tenant, form
// snapshot, date) key, inserting an empty one if it does not exist yet.
// Concurrent calls for the same key resolve to the same document through the
// unique index and the $setOnInsert upsert.
func (dbService *StandupDBService) GetOrCreateDailyEntry(entry standupTypes.DailyEntry) (standupTypes.DailyEntry, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"userId":           entry.UserID,
		"tenantId":         entry.TenantID,
		"formSnapshot._id": entry.FormSnapshot.ID,
		"date":             entry.Date,
	}

	if entry.FormResponses == nil {
		entry.FormResponses = []standupTypes.FormResponse{}
	}
	entry.CreatedAt = time.Now().Unix()

	upsert := true
	rd := options.After
	opts := options.FindOneAndUpdateOptions{
		Upsert:         &upsert,
		ReturnDocument: &rd,
	}

	var result standupTypes.DailyEntry
	err := dbService.collectionDailies().FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$setOnInsert": entry},
		&opts,
	).Decode(&result)
	if err != nil {
		// two concurrent upserts can race on the unique index; the loser
		// retries as a plain read
		if mongo.IsDuplicateKeyError(err) {
			err = dbService.collectionDailies().FindOne(ctx, filter).Decode(&result)
		}
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (dbService *StandupDBService) GetDailyEntry(userID string, tenantID string, formID string, date string) (entry standupTypes.DailyEntry, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_userID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return entry, err
	}
	_tenantID, err := primitive.ObjectIDFromHex(tenantID)
	if err != nil {
		return entry, err
	}
	_formID, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return entry, err
	}

	filter := bson.M{
		"userId":           _userID,
		"tenantId":         _tenantID,
		"formSnapshot._id": _formID,
		"date":             date,
	}

	err = dbService.collectionDailies().FindOne(ctx, filter).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entry, standupTypes.ErrEntryNotFound
	}
	return entry, err
}

// SaveDailyResponses writes the responses of an entry in one conditional
// update: it only matches while formResponses is still empty, so a racing
// duplicate submission loses and is rejected.
func (dbService *StandupDBService) SaveDailyResponses(entryID primitive.ObjectID, responses []standupTypes.FormResponse) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionDailies().UpdateOne(
		ctx,
		bson.M{
			"_id":           entryID,
			"formResponses": bson.M{"$size": 0},
		},
		bson.M{"$set": bson.M{"formResponses": responses}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := dbService.collectionDailies().CountDocuments(ctx, bson.M{"_id": entryID})
		if err != nil {
			return err
		}
		if count == 0 {
			return standupTypes.ErrEntryNotFound
		}
		return standupTypes.ErrAlreadyAnswered
	}
	return nil
}

// FindDailyEntries filters entries of a form snapshot, optionally by user
// and date label range. Stored labels are DD/MM/YYYY strings, so range
// queries re-parse them inside the pipeline.
func (dbService *StandupDBService) FindDailyEntries(filter standupTypes.DailyEntryFilter) ([]standupTypes.DailyEntry, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	match := bson.M{
		"tenantId":         filter.TenantID,
		"formSnapshot._id": filter.FormID,
	}
	if filter.UserID != nil {
		match["userId"] = *filter.UserID
	}
	if filter.AnsweredOnly {
		match["formResponses"] = bson.M{"$ne": bson.A{}}
	}

	pipeline := mongo.Pipeline{}
	if filter.StartDate != "" || filter.EndDate != "" {
		pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.M{
			"convertedDate": bson.M{"$dateFromString": bson.M{
				"dateString": "$date",
				"format":     "%d/%m/%Y",
			}},
		}}})

		dateRange := bson.M{}
		if filter.StartDate != "" {
			startDate, err := time.Parse("02/01/2006", filter.StartDate)
			if err != nil {
				return nil, err
			}
			dateRange["$gte"] = startDate
		}
		if filter.EndDate != "" {
			endDate, err := time.Parse("02/01/2006", filter.EndDate)
			if err != nil {
				return nil, err
			}
			dateRange["$lte"] = endDate
		}
		match["convertedDate"] = dateRange

		pipeline = append(pipeline,
			bson.D{{Key: "$match", Value: match}},
			bson.D{{Key: "$sort", Value: bson.M{"convertedDate": -1}}},
		)
	} else {
		pipeline = append(pipeline,
			bson.D{{Key: "$match", Value: match}},
			bson.D{{Key: "$sort", Value: bson.M{"date": -1}}},
		)
	}

	cursor, err := dbService.collectionDailies().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []standupTypes.DailyEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetAnsweredEntriesForProject returns the answered entries of a project for
// one date label, across the project's form snapshots.
func (dbService *StandupDBService) GetAnsweredEntriesForProject(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) ([]standupTypes.DailyEntry, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"tenantId":               tenantID,
		"formSnapshot.projectId": projectID,
		"date":                   date,
		"formResponses":          bson.M{"$ne": bson.A{}},
	}

	cursor, err := dbService.collectionDailies().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []standupTypes.DailyEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

type ProjectDateRef struct {
	TenantID  primitive.ObjectID `bson:"tenantId"`
	ProjectID primitive.ObjectID `bson:"projectId"`
}

// GetProjectsWithUnansweredEntries lists the distinct projects that still
// have unanswered entries for the given date label. Used by the end-of-day
// sweep.
func (dbService *StandupDBService) GetProjectsWithUnansweredEntries(date string) ([]ProjectDateRef, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"date":          date,
			"formResponses": bson.M{"$size": 0},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"tenantId":  "$tenantId",
				"projectId": "$formSnapshot.projectId",
			},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":       0,
			"tenantId":  "$_id.tenantId",
			"projectId": "$_id.projectId",
		}}},
	}

	cursor, err := dbService.collectionDailies().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	refs := []ProjectDateRef{}
	if err = cursor.All(ctx, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// CountAnsweredEntries counts answered entries of a project for one date.
func (dbService *StandupDBService) CountAnsweredEntries(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"tenantId":               tenantID,
		"formSnapshot.projectId": projectID,
		"date":                   date,
		"formResponses":          bson.M{"$ne": bson.A{}},
	}
	return dbService.collectionDailies().CountDocuments(ctx, filter)
}
