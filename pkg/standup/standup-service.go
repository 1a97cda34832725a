package standup

import (
	standupDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/standup"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StandupDBService is the persistence contract the core consumes. It is
// implemented by pkg/db/standup and by in-memory fakes in tests.
type StandupDBService interface {
	GetFormByID(tenantID string, formID string) (standupTypes.Form, error)
	GetCurrentFormInfos() ([]standupTypes.CurrentFormInfo, error)
	ActivateForm(tenantID string, formID string) error

	GetOrCreateDailyEntry(entry standupTypes.DailyEntry) (standupTypes.DailyEntry, error)
	GetDailyEntry(userID string, tenantID string, formID string, date string) (standupTypes.DailyEntry, error)
	SaveDailyResponses(entryID primitive.ObjectID, responses []standupTypes.FormResponse) error
	FindDailyEntries(filter standupTypes.DailyEntryFilter) ([]standupTypes.DailyEntry, error)
	GetAnsweredEntriesForProject(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) ([]standupTypes.DailyEntry, error)
	CountAnsweredEntries(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) (int64, error)
	GetProjectsWithUnansweredEntries(date string) ([]standupDB.ProjectDateRef, error)

	GetProjectByID(tenantID primitive.ObjectID, projectID primitive.ObjectID) (standupTypes.Project, error)
	GetProjectMembers(project standupTypes.Project) ([]standupTypes.User, error)
	GetUserByID(userID string) (standupTypes.User, error)
	GetUsersByIDs(userIDs []primitive.ObjectID) ([]standupTypes.User, error)
	GetTenantByID(tenantID primitive.ObjectID) (standupTypes.Tenant, error)

	MarkSummarySent(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) error
}

// EmailSender hands a rendered-template send off to the messaging layer.
// Delivery failures are the sender's problem (queue + retry); callers only
// log them.
type EmailSender interface {
	SendTemplatedEmail(tenantID string, to []string, messageType string, payload map[string]interface{}) error
}

const DEFAULT_REMINDER_WORKERS = 8

var (
	standupDBService StandupDBService
	emailSender      EmailSender
	reminderWorkers  int
)

func Init(
	dbService StandupDBService,
	sender EmailSender,
	workers int,
) {
	standupDBService = dbService
	emailSender = sender
	if workers < 1 {
		workers = DEFAULT_REMINDER_WORKERS
	}
	reminderWorkers = workers
}
