package standup

import (
	"errors"
	"log/slog"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckAndSendSummary sends every project member a personalized summary of
// the day's responses once all members have answered. It re-runs after every
// submission for the project/date, so the send is guarded by the persisted
// summary marker: evaluation is at-least-once, the emails go out once.
func CheckAndSendSummary(tenantID primitive.ObjectID, projectID primitive.ObjectID, date string) error {
	project, err := standupDBService.GetProjectByID(tenantID, projectID)
	if err != nil {
		return err
	}

	total := len(project.Users)
	if total == 0 {
		return nil
	}

	answered, err := standupDBService.CountAnsweredEntries(tenantID, projectID, date)
	if err != nil {
		return err
	}
	if answered != int64(total) {
		return nil
	}

	entries, err := standupDBService.GetAnsweredEntriesForProject(tenantID, projectID, date)
	if err != nil {
		return err
	}

	err = standupDBService.MarkSummarySent(tenantID, projectID, date)
	if err != nil {
		if errors.Is(err, standupTypes.ErrSummaryAlreadySent) {
			slog.Debug("Summary already sent for project and date", slog.String("projectID", projectID.Hex()), slog.String("date", date))
			return nil
		}
		return err
	}

	return sendSummaryToMembers(project, entries, date)
}

func sendSummaryToMembers(project standupTypes.Project, entries []standupTypes.DailyEntry, date string) error {
	members, err := standupDBService.GetProjectMembers(project)
	if err != nil {
		return err
	}

	usersByID := make(map[string]standupTypes.User, len(members))
	for _, member := range members {
		usersByID[member.ID.Hex()] = member
	}
	items := collectSummaryItems(entries, usersByID)
	if len(items) == 0 {
		return nil
	}

	for _, member := range members {
		err := emailSender.SendTemplatedEmail(
			project.TenantID.Hex(),
			[]string{member.Email},
			messagingTypes.EMAIL_TYPE_DAILY_SUMMARY,
			map[string]interface{}{
				"name":        member.Name,
				"projectName": project.Name,
				"responses":   items,
				"date":        date,
			},
		)
		if err != nil {
			slog.Error("Failed to send daily summary email",
				slog.String("projectID", project.ID.Hex()),
				slog.String("memberID", member.ID.Hex()),
				slog.String("error", err.Error()))
			continue
		}
	}
	return nil
}
