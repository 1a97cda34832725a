package standup

import (
	"strings"
	"sync"
	"testing"

	standupDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/standup"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/timeutils"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memDB is an in-memory StandupDBService used by the tests in this package.
type memDB struct {
	mu sync.Mutex

	forms    map[string]standupTypes.Form
	entries  map[string]standupTypes.DailyEntry
	projects map[string]standupTypes.Project
	users    map[string]standupTypes.User
	tenants  map[string]standupTypes.Tenant
	markers  map[string]bool

	currentInfos []standupTypes.CurrentFormInfo
}

func newMemDB() *memDB {
	return &memDB{
		forms:    map[string]standupTypes.Form{},
		entries:  map[string]standupTypes.DailyEntry{},
		projects: map[string]standupTypes.Project{},
		users:    map[string]standupTypes.User{},
		tenants:  map[string]standupTypes.Tenant{},
		markers:  map[string]bool{},
	}
}

func entryKey(userID string, tenantID string, formID string, date string) string {
	return strings.Join([]string{userID, tenantID, formID, date}, "|")
}

func markerKey(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) string {
	return strings.Join([]string{tenantID.Hex(), projectID.Hex(), date}, "|")
}

func (db *memDB) GetFormByID(tenantID string, formID string) (standupTypes.Form, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	form, ok := db.forms[formID]
	if !ok || form.TenantID.Hex() != tenantID {
		return standupTypes.Form{}, standupTypes.ErrEntryNotFound
	}
	return form, nil
}

func (db *memDB) GetCurrentFormInfos() ([]standupTypes.CurrentFormInfo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]standupTypes.CurrentFormInfo{}, db.currentInfos...), nil
}

func (db *memDB) ActivateForm(tenantID string, formID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	target, ok := db.forms[formID]
	if !ok {
		return standupTypes.ErrEntryNotFound
	}
	for id, form := range db.forms {
		if form.ProjectID == target.ProjectID {
			form.IsCurrentForm = id == formID
			db.forms[id] = form
		}
	}
	return nil
}

func (db *memDB) GetOrCreateDailyEntry(entry standupTypes.DailyEntry) (standupTypes.DailyEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	key := entryKey(entry.UserID.Hex(), entry.TenantID.Hex(), entry.FormSnapshot.ID.Hex(), entry.Date)
	if existing, ok := db.entries[key]; ok {
		return existing, nil
	}
	entry.ID = primitive.NewObjectID()
	db.entries[key] = entry
	return entry, nil
}

func (db *memDB) GetDailyEntry(userID string, tenantID string, formID string, date string) (standupTypes.DailyEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	entry, ok := db.entries[entryKey(userID, tenantID, formID, date)]
	if !ok {
		return standupTypes.DailyEntry{}, standupTypes.ErrEntryNotFound
	}
	return entry, nil
}

func (db *memDB) SaveDailyResponses(entryID primitive.ObjectID, responses []standupTypes.FormResponse) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for key, entry := range db.entries {
		if entry.ID != entryID {
			continue
		}
		if entry.IsAnswered() {
			return standupTypes.ErrAlreadyAnswered
		}
		entry.FormResponses = responses
		db.entries[key] = entry
		return nil
	}
	return standupTypes.ErrEntryNotFound
}

func (db *memDB) FindDailyEntries(filter standupTypes.DailyEntryFilter) ([]standupTypes.DailyEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := []standupTypes.DailyEntry{}
	for _, entry := range db.entries {
		if entry.TenantID != filter.TenantID || entry.FormSnapshot.ID != filter.FormID {
			continue
		}
		if filter.UserID != nil && entry.UserID != *filter.UserID {
			continue
		}
		if filter.AnsweredOnly && !entry.IsAnswered() {
			continue
		}
		if !dateInRange(entry.Date, filter.StartDate, filter.EndDate) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func dateInRange(date string, start string, end string) bool {
	day, err := timeutils.ParseDateLabel(date)
	if err != nil {
		return false
	}
	if start != "" {
		from, err := timeutils.ParseDateLabel(start)
		if err != nil || day.Before(from) {
			return false
		}
	}
	if end != "" {
		to, err := timeutils.ParseDateLabel(end)
		if err != nil || day.After(to) {
			return false
		}
	}
	return true
}

func (db *memDB) GetAnsweredEntriesForProject(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) ([]standupTypes.DailyEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := []standupTypes.DailyEntry{}
	for _, entry := range db.entries {
		if entry.TenantID == tenantID && entry.FormSnapshot.ProjectID == projectID && entry.Date == date && entry.IsAnswered() {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (db *memDB) CountAnsweredEntries(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) (int64, error) {
	entries, err := db.GetAnsweredEntriesForProject(tenantID, projectID, date)
	if err != nil {
		return 0, err
	}
	return int64(len(entries)), nil
}

func (db *memDB) GetProjectsWithUnansweredEntries(date string) ([]standupDB.ProjectDateRef, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	seen := map[string]bool{}
	refs := []standupDB.ProjectDateRef{}
	for _, entry := range db.entries {
		if entry.Date != date || entry.IsAnswered() {
			continue
		}
		ref := standupDB.ProjectDateRef{TenantID: entry.TenantID, ProjectID: entry.FormSnapshot.ProjectID}
		key := ref.TenantID.Hex() + "|" + ref.ProjectID.Hex()
		if seen[key] {
			continue
		}
		seen[key] = true
		refs = append(refs, ref)
	}
	return refs, nil
}

func (db *memDB) GetProjectByID(tenantID primitive.ObjectID, projectID primitive.ObjectID) (standupTypes.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	project, ok := db.projects[projectID.Hex()]
	if !ok || project.TenantID != tenantID {
		return standupTypes.Project{}, standupTypes.ErrEntryNotFound
	}
	return project, nil
}

func (db *memDB) GetProjectMembers(project standupTypes.Project) ([]standupTypes.User, error) {
	return db.GetUsersByIDs(project.Users)
}

func (db *memDB) GetUserByID(userID string) (standupTypes.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	user, ok := db.users[userID]
	if !ok {
		return standupTypes.User{}, standupTypes.ErrEntryNotFound
	}
	return user, nil
}

func (db *memDB) GetUsersByIDs(userIDs []primitive.ObjectID) ([]standupTypes.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := []standupTypes.User{}
	for _, id := range userIDs {
		if user, ok := db.users[id.Hex()]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (db *memDB) GetTenantByID(tenantID primitive.ObjectID) (standupTypes.Tenant, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	tenant, ok := db.tenants[tenantID.Hex()]
	if !ok {
		return standupTypes.Tenant{}, standupTypes.ErrEntryNotFound
	}
	return tenant, nil
}

func (db *memDB) MarkSummarySent(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	key := markerKey(tenantID, projectID, date)
	if db.markers[key] {
		return standupTypes.ErrSummaryAlreadySent
	}
	db.markers[key] = true
	return nil
}

type sentEmail struct {
	tenantID    string
	to          []string
	messageType string
	payload     map[string]interface{}
}

// captureSender records every send instead of delivering anything.
type captureSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *captureSender) SendTemplatedEmail(tenantID string, to []string, messageType string, payload map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{tenantID: tenantID, to: to, messageType: messageType, payload: payload})
	return nil
}

func (s *captureSender) byType(messageType string) []sentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []sentEmail{}
	for _, email := range s.sent {
		if email.messageType == messageType {
			result = append(result, email)
		}
	}
	return result
}

func setupTestService(t *testing.T) (*memDB, *captureSender) {
	t.Helper()
	db := newMemDB()
	sender := &captureSender{}
	Init(db, sender, 2)
	return db, sender
}

// fixture is one tenant with one active project, its form and members.
type fixture struct {
	tenant  standupTypes.Tenant
	project standupTypes.Project
	form    standupTypes.Form
	users   []standupTypes.User
}

func addFixture(db *memDB, timezones ...string) fixture {
	tenant := standupTypes.Tenant{ID: primitive.NewObjectID(), Name: "Acme"}
	db.tenants[tenant.ID.Hex()] = tenant

	users := make([]standupTypes.User, len(timezones))
	userIDs := make([]primitive.ObjectID, len(timezones))
	for i, tz := range timezones {
		user := standupTypes.User{
			ID:       primitive.NewObjectID(),
			Name:     "User " + string(rune('A'+i)),
			Email:    "user" + string(rune('a'+i)) + "@example.com",
			Timezone: standupTypes.Timezone{Label: tz, Value: tz},
		}
		db.users[user.ID.Hex()] = user
		users[i] = user
		userIDs[i] = user.ID
	}

	project := standupTypes.Project{
		ID:       primitive.NewObjectID(),
		TenantID: tenant.ID,
		Name:     "Apollo",
		Users:    userIDs,
		IsActive: true,
	}
	db.projects[project.ID.Hex()] = project

	form := standupTypes.Form{
		ID:            primitive.NewObjectID(),
		TenantID:      tenant.ID,
		ProjectID:     project.ID,
		IsCurrentForm: true,
		NotifyDays:    []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		NotifyTime:    "09:30",
		Questions: []standupTypes.Question{
			{Text: "What did you do yesterday?", AnswerType: standupTypes.ANSWER_TYPE_TEXT, Order: 0},
			{Text: "What will you do today?", AnswerType: standupTypes.ANSWER_TYPE_TEXT, Order: 1},
		},
	}
	db.forms[form.ID.Hex()] = form
	db.currentInfos = append(db.currentInfos, standupTypes.CurrentFormInfo{Form: form, Project: project, Tenant: tenant})

	return fixture{tenant: tenant, project: project, form: form, users: users}
}
