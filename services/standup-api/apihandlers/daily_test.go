package apihandlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwthandling "github.com/Scrumease/Scrum-Ease-Web-API/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	standupDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/standup"
	standupService "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"
)

// stubStore serves canned values to the standup core for handler tests.
type stubStore struct {
	entry    standupTypes.DailyEntry
	entryErr error
	entries  []standupTypes.DailyEntry

	lastFilter standupTypes.DailyEntryFilter
}

func (s *stubStore) GetFormByID(tenantID string, formID string) (standupTypes.Form, error) {
	return standupTypes.Form{}, nil
}

func (s *stubStore) GetCurrentFormInfos() ([]standupTypes.CurrentFormInfo, error) {
	return nil, nil
}

func (s *stubStore) ActivateForm(tenantID string, formID string) error {
	return nil
}

func (s *stubStore) GetOrCreateDailyEntry(entry standupTypes.DailyEntry) (standupTypes.DailyEntry, error) {
	return entry, nil
}

func (s *stubStore) GetDailyEntry(userID string, tenantID string, formID string, date string) (standupTypes.DailyEntry, error) {
	return s.entry, s.entryErr
}

func (s *stubStore) SaveDailyResponses(entryID primitive.ObjectID, responses []standupTypes.FormResponse) error {
	return nil
}

func (s *stubStore) FindDailyEntries(filter standupTypes.DailyEntryFilter) ([]standupTypes.DailyEntry, error) {
	s.lastFilter = filter
	return s.entries, nil
}

func (s *stubStore) GetAnsweredEntriesForProject(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) ([]standupTypes.DailyEntry, error) {
	return nil, nil
}

func (s *stubStore) CountAnsweredEntries(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) (int64, error) {
	return 0, nil
}

func (s *stubStore) GetProjectsWithUnansweredEntries(date string) ([]standupDB.ProjectDateRef, error) {
	return nil, nil
}

func (s *stubStore) GetProjectByID(tenantID primitive.ObjectID, projectID primitive.ObjectID) (standupTypes.Project, error) {
	return standupTypes.Project{}, nil
}

func (s *stubStore) GetProjectMembers(project standupTypes.Project) ([]standupTypes.User, error) {
	return nil, nil
}

func (s *stubStore) GetUserByID(userID string) (standupTypes.User, error) {
	return standupTypes.User{}, nil
}

func (s *stubStore) GetUsersByIDs(userIDs []primitive.ObjectID) ([]standupTypes.User, error) {
	return nil, nil
}

func (s *stubStore) GetTenantByID(tenantID primitive.ObjectID) (standupTypes.Tenant, error) {
	return standupTypes.Tenant{}, nil
}

func (s *stubStore) MarkSummarySent(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) error {
	return nil
}

type nopSender struct{}

func (nopSender) SendTemplatedEmail(tenantID string, to []string, messageType string, payload map[string]interface{}) error {
	return nil
}

const testSignKey = "test-sign-key"

func setupStandupRouter(t *testing.T, store *stubStore) (*gin.Engine, string) {
	t.Helper()
	standupService.Init(store, nopSender{}, 1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHTTPHandler(testSignKey, time.Hour, nil)
	h.AddStandupAPI(router.Group("/v1"))

	token, err := jwthandling.GenerateNewUserToken(
		time.Hour,
		primitive.NewObjectID().Hex(),
		primitive.NewObjectID().Hex(),
		"member",
		"member@example.com",
		testSignKey,
	)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return router, token
}

func TestAnswerDailyConflictMapping(t *testing.T) {
	formID := primitive.NewObjectID().Hex()
	body := `{"date":"01/07/2024","responses":[{"textQuestion":"What did you do yesterday?","orderQuestion":0,"answer":"reviews"}]}`

	tests := []struct {
		name  string
		store *stubStore
		want  int
	}{
		{
			name:  "missing entry is a conflict",
			store: &stubStore{entryErr: standupTypes.ErrEntryNotFound},
			want:  http.StatusConflict,
		},
		{
			name: "already answered entry is a conflict",
			store: &stubStore{entry: standupTypes.DailyEntry{
				ID: primitive.NewObjectID(),
				FormResponses: []standupTypes.FormResponse{
					{TextQuestion: "What did you do yesterday?", OrderQuestion: 0, Answer: "done"},
				},
			}},
			want: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, token := setupStandupRouter(t, tt.store)

			req, err := http.NewRequest(http.MethodPost, "/v1/standup/daily/answer/"+formID, bytes.NewBufferString(body))
			if err != nil {
				t.Fatalf("failed to build request: %v", err)
			}
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d (body: %s)", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetResponsesListsAnsweredEntriesOnly(t *testing.T) {
	store := &stubStore{}
	router, token := setupStandupRouter(t, store)

	formID := primitive.NewObjectID().Hex()
	req, err := http.NewRequest(http.MethodGet, "/v1/standup/daily/responses/"+formID+"?startDate=01/07/2024&endDate=31/07/2024", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	if !store.lastFilter.AnsweredOnly {
		t.Error("expected the listing to query answered entries only")
	}
	if store.lastFilter.StartDate != "01/07/2024" || store.lastFilter.EndDate != "31/07/2024" {
		t.Errorf("unexpected date range in filter: %+v", store.lastFilter)
	}
}
