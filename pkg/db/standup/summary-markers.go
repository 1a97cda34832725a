package standup

import (
	"time"

	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MarkSummarySent claims the summary for a (tenant, project, date) triple.
// The unique index makes the insert succeed exactly once; every later claim
// gets ErrSummaryAlreadySent. Both the completion trigger and the end-of-day
// sweep go through this before sending anything.
func (dbService *StandupDBService) MarkSummarySent(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	marker := standupTypes.SummaryMarker{
		TenantID:  tenantID,
		ProjectID: projectID,
		Date:      date,
		SentAt:    time.Now().Unix(),
	}

	_, err := dbService.collectionSummaryMarkers().InsertOne(ctx, marker)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return standupTypes.ErrSummaryAlreadySent
		}
		return err
	}
	return nil
}
