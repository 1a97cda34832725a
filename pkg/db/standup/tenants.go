package standup

import (
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (dbService *StandupDBService) GetTenantByID(tenantID primitive.ObjectID) (tenant standupTypes.Tenant, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionTenants().FindOne(ctx, bson.M{"_id": tenantID}).Decode(&tenant)
	return tenant, err
}
