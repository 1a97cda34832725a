package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	EMAIL_TYPE_DAILY_REMINDER = "daily-reminder"
	EMAIL_TYPE_URGENT_NOTIFY  = "urgent-notify"
	EMAIL_TYPE_DAILY_SUMMARY  = "daily-summary"
)

type EmailTemplate struct {
	ID              primitive.ObjectID  `bson:"_id" json:"id,omitempty"`
	MessageType     string              `bson:"messageType" json:"messageType"`
	TenantID        string              `bson:"tenantId,omitempty" json:"tenantId"`
	DefaultLanguage string              `bson:"defaultLanguage" json:"defaultLanguage"`
	HeaderOverrides *HeaderOverrides    `bson:"headerOverrides" json:"headerOverrides"`
	Translations    []LocalizedTemplate `bson:"translations" json:"translations"`
}

type HeaderOverrides struct {
	From      string   `bson:"from" json:"from"`
	Sender    string   `bson:"sender" json:"sender"`
	ReplyTo   []string `bson:"replyTo" json:"replyTo"`
	NoReplyTo bool     `bson:"noReplyTo" json:"noReplyTo"`
}

type LocalizedTemplate struct {
	Lang        string `bson:"languageCode" json:"lang"`
	Subject     string `bson:"subject" json:"subject"`
	TemplateDef string `bson:"templateDef" json:"templateDef"`
}
