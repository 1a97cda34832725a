package standup

import (
	"errors"
	"log/slog"
	"time"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/timeutils"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"
)

// DailyCheckResult holds today's entry and, when present, yesterday's, so
// the frontend can prefill "what did you do yesterday" style questions.
type DailyCheckResult struct {
	Today     standupTypes.DailyEntry  `json:"today"`
	Yesterday *standupTypes.DailyEntry `json:"yesterday,omitempty"`
}

// CheckOrCreateDaily materializes the user's daily entry for the current
// local day of the given form, snapshotting the live form on first creation.
// Calling it repeatedly within the same local day returns the same entry.
func CheckOrCreateDaily(userID string, tenantID string, formID string) (result DailyCheckResult, err error) {
	user, err := standupDBService.GetUserByID(userID)
	if err != nil {
		return result, err
	}

	now := time.Now()
	today, err := timeutils.LocalDateLabel(user.Timezone.Value, now)
	if err != nil {
		return result, err
	}

	entry, err := standupDBService.GetDailyEntry(userID, tenantID, formID, today)
	if err != nil {
		if !errors.Is(err, standupTypes.ErrEntryNotFound) {
			return result, err
		}

		form, err := standupDBService.GetFormByID(tenantID, formID)
		if err != nil {
			return result, err
		}

		entry, err = standupDBService.GetOrCreateDailyEntry(standupTypes.DailyEntry{
			UserID:        user.ID,
			TenantID:      form.TenantID,
			Date:          today,
			FormSnapshot:  form,
			FormResponses: []standupTypes.FormResponse{},
		})
		if err != nil {
			return result, err
		}
	}
	result.Today = entry

	yesterday, err := timeutils.LocalDateLabel(user.Timezone.Value, now.AddDate(0, 0, -1))
	if err != nil {
		return result, err
	}
	yesterdayEntry, err := standupDBService.GetDailyEntry(userID, tenantID, formID, yesterday)
	if err != nil {
		if !errors.Is(err, standupTypes.ErrEntryNotFound) {
			return result, err
		}
	} else {
		result.Yesterday = &yesterdayEntry
	}

	return result, nil
}

// SubmitAnswer stores the responses of a daily entry in a single write, then
// runs urgency escalation and the project summary check. An entry is
// answered exactly once.
func SubmitAnswer(userID string, tenantID string, formID string, date string, responses []standupTypes.FormResponse) error {
	entry, err := standupDBService.GetDailyEntry(userID, tenantID, formID, date)
	if err != nil {
		return err
	}
	if entry.IsAnswered() {
		return standupTypes.ErrAlreadyAnswered
	}

	if err := standupDBService.SaveDailyResponses(entry.ID, responses); err != nil {
		return err
	}
	entry.FormResponses = responses

	notifyUrgentResponses(entry)

	// completion check runs after escalation; its failures never undo the
	// stored answer
	err = CheckAndSendSummary(entry.TenantID, entry.FormSnapshot.ProjectID, date)
	if err != nil {
		slog.Error("Failed to run summary check after answer",
			slog.String("userID", userID),
			slog.String("projectID", entry.FormSnapshot.ProjectID.Hex()),
			slog.String("date", date),
			slog.String("error", err.Error()))
	}
	return nil
}

// notifyUrgentResponses sends one escalation email per distinct recipient
// set of the entry's urgency-eligible responses. Delivery failures are
// isolated per group.
func notifyUrgentResponses(entry standupTypes.DailyEntry) {
	groups := collectUrgentGroups(entry)
	if len(groups) == 0 {
		return
	}

	user, err := standupDBService.GetUserByID(entry.UserID.Hex())
	if err != nil {
		slog.Error("Failed to load answering user for urgency escalation", slog.String("userID", entry.UserID.Hex()), slog.String("error", err.Error()))
		return
	}
	tenant, err := standupDBService.GetTenantByID(entry.TenantID)
	if err != nil {
		slog.Error("Failed to load tenant for urgency escalation", slog.String("tenantID", entry.TenantID.Hex()), slog.String("error", err.Error()))
		return
	}
	project, err := standupDBService.GetProjectByID(entry.TenantID, entry.FormSnapshot.ProjectID)
	if err != nil {
		slog.Error("Failed to load project for urgency escalation", slog.String("projectID", entry.FormSnapshot.ProjectID.Hex()), slog.String("error", err.Error()))
		return
	}

	for _, group := range groups {
		recipients, err := standupDBService.GetUsersByIDs(group.recipients)
		if err != nil {
			slog.Error("Failed to resolve urgency recipients", slog.String("projectID", project.ID.Hex()), slog.String("error", err.Error()))
			continue
		}
		tos := make([]string, 0, len(recipients))
		for _, recipient := range recipients {
			tos = append(tos, recipient.Email)
		}
		if len(tos) == 0 {
			continue
		}

		err = emailSender.SendTemplatedEmail(
			entry.TenantID.Hex(),
			tos,
			messagingTypes.EMAIL_TYPE_URGENT_NOTIFY,
			map[string]interface{}{
				"userName":    user.Name,
				"userEmail":   user.Email,
				"tenantName":  tenant.Name,
				"projectName": project.Name,
				"date":        entry.Date,
				"responses":   group.responses,
			},
		)
		if err != nil {
			slog.Error("Failed to send urgency escalation email",
				slog.String("projectID", project.ID.Hex()),
				slog.String("userID", user.ID.Hex()),
				slog.String("error", err.Error()))
		}
	}
}

// GetEntries lists the daily entries matching the filter.
func GetEntries(filter standupTypes.DailyEntryFilter) ([]standupTypes.DailyEntry, error) {
	return standupDBService.FindDailyEntries(filter)
}
