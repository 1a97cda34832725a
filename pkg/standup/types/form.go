package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	ANSWER_TYPE_TEXT            = "text"
	ANSWER_TYPE_YES_NO          = "yes/no"
	ANSWER_TYPE_MULTIPLE_CHOICE = "multiple choice"
)

type Form struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID      primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	ProjectID     primitive.ObjectID `bson:"projectId" json:"projectId"`
	Questions     []Question         `bson:"questions" json:"questions"`
	IsCurrentForm bool               `bson:"isCurrentForm" json:"isCurrentForm"`
	NotifyDays    []string           `bson:"notifyDays" json:"notifyDays"`
	NotifyTime    string             `bson:"notifyTime" json:"notifyTime"` // "HH:MM", interpreted in each recipient's timezone
}

type Question struct {
	Text             string                `bson:"text" json:"text"`
	AnswerType       string                `bson:"answerType" json:"answerType"`
	Order            int                   `bson:"order" json:"order"`
	Choices          []string              `bson:"choices,omitempty" json:"choices,omitempty"`
	AdvancedSettings AdvancedSettings      `bson:"advancedSettings" json:"advancedSettings"`
	Dependencies     *QuestionDependencies `bson:"dependencies,omitempty" json:"dependencies,omitempty"`
}

type AdvancedSettings struct {
	UrgencyRequired   bool                 `bson:"urgencyRequired" json:"urgencyRequired"`
	UrgencyRecipients []primitive.ObjectID `bson:"urgencyRecipients,omitempty" json:"urgencyRecipients,omitempty"`
	UrgencyThreshold  int                  `bson:"urgencyThreshold" json:"urgencyThreshold"` // 0-10, 0 means urgency scoring is off
}

type QuestionDependencies struct {
	QuestionTitle  string `bson:"questionTitle" json:"questionTitle"`
	ExpectedAnswer string `bson:"expectedAnswer" json:"expectedAnswer"`
}

// CurrentFormInfo is the scheduler's read model: an active form joined to
// its project and tenant.
type CurrentFormInfo struct {
	Form    Form    `bson:"form" json:"form"`
	Project Project `bson:"project" json:"project"`
	Tenant  Tenant  `bson:"tenant" json:"tenant"`
}
