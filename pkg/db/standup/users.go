package standup

import (
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (dbService *StandupDBService) GetUserByID(userID string) (user standupTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_userID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return user, err
	}

	err = dbService.collectionUsers().FindOne(ctx, bson.M{"_id": _userID}).Decode(&user)
	return user, err
}

func (dbService *StandupDBService) GetUsersByIDs(userIDs []primitive.ObjectID) ([]standupTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": bson.M{"$in": userIDs}}
	cursor, err := dbService.collectionUsers().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []standupTypes.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
