package standup

import (
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (dbService *StandupDBService) GetProjectByID(tenantID primitive.ObjectID, projectID primitive.ObjectID) (project standupTypes.Project, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": projectID, "tenantId": tenantID}
	err = dbService.collectionProjects().FindOne(ctx, filter).Decode(&project)
	return project, err
}

// GetProjectMembers resolves the member user documents of a project.
func (dbService *StandupDBService) GetProjectMembers(project standupTypes.Project) ([]standupTypes.User, error) {
	return dbService.GetUsersByIDs(project.Users)
}
