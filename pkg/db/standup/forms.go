package standup

import (
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (dbService *StandupDBService) GetFormByID(tenantID string, formID string) (form standupTypes.Form, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_tenantID, err := primitive.ObjectIDFromHex(tenantID)
	if err != nil {
		return form, err
	}
	_formID, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return form, err
	}

	filter := bson.M{"_id": _formID, "tenantId": _tenantID}
	err = dbService.collectionForms().FindOne(ctx, filter).Decode(&form)
	return form, err
}

// GetCurrentFormInfos returns every active form joined to its project and
// tenant. This is the scheduler's snapshot feed for a reminder tick.
func (dbService *StandupDBService) GetCurrentFormInfos() ([]standupTypes.CurrentFormInfo, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isCurrentForm": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         COLLECTION_NAME_PROJECTS,
			"localField":   "projectId",
			"foreignField": "_id",
			"as":           "project",
		}}},
		bson.D{{Key: "$unwind", Value: "$project"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         COLLECTION_NAME_TENANTS,
			"localField":   "tenantId",
			"foreignField": "_id",
			"as":           "tenant",
		}}},
		bson.D{{Key: "$unwind", Value: "$tenant"}},
		bson.D{{Key: "$project", Value: bson.M{
			"form":    "$$ROOT",
			"project": "$project",
			"tenant":  "$tenant",
		}}},
	}

	cursor, err := dbService.collectionForms().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	infos := []standupTypes.CurrentFormInfo{}
	if err = cursor.All(ctx, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// ActivateForm makes the form the single current one of its project: all
// siblings are cleared first, then the flag is set on the target form.
func (dbService *StandupDBService) ActivateForm(tenantID string, formID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_tenantID, err := primitive.ObjectIDFromHex(tenantID)
	if err != nil {
		return err
	}
	_formID, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return err
	}

	var form standupTypes.Form
	err = dbService.collectionForms().FindOne(ctx, bson.M{"_id": _formID, "tenantId": _tenantID}).Decode(&form)
	if err != nil {
		return err
	}

	_, err = dbService.collectionForms().UpdateMany(
		ctx,
		bson.M{
			"tenantId":  _tenantID,
			"projectId": form.ProjectID,
			"_id":       bson.M{"$ne": _formID},
		},
		bson.M{"$set": bson.M{"isCurrentForm": false}},
	)
	if err != nil {
		return err
	}

	_, err = dbService.collectionForms().UpdateOne(
		ctx,
		bson.M{"_id": _formID, "tenantId": _tenantID},
		bson.M{"$set": bson.M{"isCurrentForm": true}},
	)
	return err
}
