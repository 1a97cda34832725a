package standup

import (
	"fmt"

	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportEntries flattens the entries matching the filter into CSV-ready
// rows, one row per response, with resolved respondent names.
func ExportEntries(filter standupTypes.DailyEntryFilter) ([][]string, error) {
	filter.AnsweredOnly = true
	entries, err := standupDBService.FindDailyEntries(filter)
	if err != nil {
		return nil, err
	}

	userIDSet := map[primitive.ObjectID]struct{}{}
	for _, entry := range entries {
		userIDSet[entry.UserID] = struct{}{}
	}
	userIDs := make([]primitive.ObjectID, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	users, err := standupDBService.GetUsersByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	namesByID := make(map[string]string, len(users))
	for _, user := range users {
		namesByID[user.ID.Hex()] = user.Name
	}

	rows := [][]string{
		{"date", "user", "question", "answer", "urgencyValue"},
	}
	for _, entry := range entries {
		name := namesByID[entry.UserID.Hex()]
		for _, response := range entry.FormResponses {
			rows = append(rows, []string{
				entry.Date,
				name,
				response.TextQuestion,
				fmt.Sprint(response.Answer),
				fmt.Sprint(response.UrgencyThreshold),
			})
		}
	}
	return rows, nil
}
