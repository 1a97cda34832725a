package standup

import (
	"sort"
	"strings"

	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// findResponseForQuestion matches a submitted response against a snapshot
// question by the (order, text) pair. Both must agree, so a response cannot
// be scored against a question the snapshot no longer describes.
func findResponseForQuestion(responses []standupTypes.FormResponse, question standupTypes.Question) *standupTypes.FormResponse {
	for i := range responses {
		if responses[i].OrderQuestion == question.Order && responses[i].TextQuestion == question.Text {
			return &responses[i]
		}
	}
	return nil
}

type urgentGroup struct {
	recipients []primitive.ObjectID
	responses  []standupTypes.FormResponse
}

func recipientSetKey(recipients []primitive.ObjectID) string {
	ids := make([]string, len(recipients))
	for i, r := range recipients {
		ids[i] = r.Hex()
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// collectUrgentGroups scores the entry's responses against the snapshot's
// urgency thresholds and groups the eligible ones by distinct recipient set,
// one escalation email per group. A question whose response value is at or
// above the configured threshold is eligible; a question without a matching
// response is skipped.
func collectUrgentGroups(entry standupTypes.DailyEntry) []urgentGroup {
	groups := map[string]*urgentGroup{}
	keyOrder := []string{}

	for _, question := range entry.FormSnapshot.Questions {
		threshold := question.AdvancedSettings.UrgencyThreshold
		if threshold == 0 || len(question.AdvancedSettings.UrgencyRecipients) == 0 {
			continue
		}

		response := findResponseForQuestion(entry.FormResponses, question)
		if response == nil {
			continue
		}
		if response.UrgencyThreshold < threshold {
			continue
		}

		key := recipientSetKey(question.AdvancedSettings.UrgencyRecipients)
		group, ok := groups[key]
		if !ok {
			group = &urgentGroup{recipients: question.AdvancedSettings.UrgencyRecipients}
			groups[key] = group
			keyOrder = append(keyOrder, key)
		}
		group.responses = append(group.responses, *response)
	}

	result := make([]urgentGroup, 0, len(keyOrder))
	for _, key := range keyOrder {
		result = append(result, *groups[key])
	}
	return result
}

// responseSummaryItem is one (question, answer, respondent) triple of a
// daily summary email.
type responseSummaryItem struct {
	Question    string      `json:"question"`
	Answer      interface{} `json:"answer"`
	RespondedBy string      `json:"respondedBy"`
}

func collectSummaryItems(entries []standupTypes.DailyEntry, usersByID map[string]standupTypes.User) []responseSummaryItem {
	items := []responseSummaryItem{}
	for _, entry := range entries {
		respondent := usersByID[entry.UserID.Hex()].Name
		for _, response := range entry.FormResponses {
			items = append(items, responseSummaryItem{
				Question:    response.TextQuestion,
				Answer:      response.Answer,
				RespondedBy: respondent,
			})
		}
	}
	return items
}
