package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// DailyEntry is one stand-up record per (user, tenant, form snapshot, date
// label). The form is embedded as an immutable snapshot at creation time, so
// later edits to the live form never change the meaning of past entries.
type DailyEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	TenantID      primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	Date          string             `bson:"date" json:"date"` // user-local date label, DD/MM/YYYY
	FormSnapshot  Form               `bson:"formSnapshot" json:"formSnapshot"`
	FormResponses []FormResponse     `bson:"formResponses" json:"formResponses"`
	CreatedAt     int64              `bson:"createdAt" json:"createdAt"`
}

type FormResponse struct {
	TextQuestion     string      `bson:"textQuestion" json:"textQuestion"`
	OrderQuestion    int         `bson:"orderQuestion" json:"orderQuestion"`
	Answer           interface{} `bson:"answer" json:"answer"`
	UrgencyThreshold int         `bson:"urgencyThreshold,omitempty" json:"urgencyThreshold,omitempty"`
}

func (e DailyEntry) IsAnswered() bool {
	return len(e.FormResponses) > 0
}

// DailyEntryFilter selects entries for a form snapshot; user and date range
// are optional. Dates are DD/MM/YYYY labels, re-parsed for range comparison.
type DailyEntryFilter struct {
	TenantID     primitive.ObjectID
	FormID       primitive.ObjectID
	UserID       *primitive.ObjectID
	StartDate    string
	EndDate      string
	AnsweredOnly bool
}

// SummaryMarker records that the daily summary for a project/date pair went
// out. Insert-once, enforced by a unique index.
type SummaryMarker struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID  primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	ProjectID primitive.ObjectID `bson:"projectId" json:"projectId"`
	Date      string             `bson:"date" json:"date"`
	SentAt    int64              `bson:"sentAt" json:"sentAt"`
}
