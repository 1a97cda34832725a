package standup

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/timeutils"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/utils"
)

// OnReminderTick evaluates every member of every active form once. A member
// is reminded when the local weekday is one of the form's notify days, the
// local time equals the notify time to the minute, and today's entry is
// still unanswered. Member evaluations run on a bounded worker pool; one
// member's failure never aborts the tick for the others.
func OnReminderTick(ctx context.Context) {
	reminderTickAt(ctx, time.Now())
}

func reminderTickAt(ctx context.Context, now time.Time) {
	infos, err := standupDBService.GetCurrentFormInfos()
	if err != nil {
		slog.Error("Failed to load current forms for reminder tick", slog.String("error", err.Error()))
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, reminderWorkers)

	for _, info := range infos {
		if !info.Project.IsActive {
			continue
		}

		members, err := standupDBService.GetProjectMembers(info.Project)
		if err != nil {
			slog.Error("Failed to resolve project members", slog.String("projectID", info.Project.ID.Hex()), slog.String("error", err.Error()))
			continue
		}

		for _, member := range members {
			select {
			case <-ctx.Done():
				wg.Wait()
				return
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func(info standupTypes.CurrentFormInfo, member standupTypes.User) {
				defer wg.Done()
				defer func() { <-sem }()
				evaluateMemberReminder(info, member, now)
			}(info, member)
		}
	}

	wg.Wait()
}

func evaluateMemberReminder(info standupTypes.CurrentFormInfo, member standupTypes.User, now time.Time) {
	currentWeekday, err := timeutils.LocalWeekdayName(member.Timezone.Value, now)
	if err != nil {
		slog.Warn("Skipping member with invalid timezone",
			slog.String("userID", member.ID.Hex()),
			slog.String("timezone", member.Timezone.Value),
			slog.String("error", err.Error()))
		return
	}
	if !utils.ContainsString(info.Form.NotifyDays, currentWeekday) {
		return
	}

	currentTime, err := timeutils.LocalTimeLabel(member.Timezone.Value, now)
	if err != nil {
		return
	}
	// exact minute match: a missed tick means a lost reminder, not a late one
	if currentTime != info.Form.NotifyTime {
		return
	}

	today, err := timeutils.LocalDateLabel(member.Timezone.Value, now)
	if err != nil {
		return
	}

	entry, err := standupDBService.GetOrCreateDailyEntry(standupTypes.DailyEntry{
		UserID:        member.ID,
		TenantID:      info.Form.TenantID,
		Date:          today,
		FormSnapshot:  info.Form,
		FormResponses: []standupTypes.FormResponse{},
	})
	if err != nil {
		slog.Error("Failed to get or create daily entry for reminder",
			slog.String("userID", member.ID.Hex()),
			slog.String("formID", info.Form.ID.Hex()),
			slog.String("error", err.Error()))
		return
	}
	if entry.IsAnswered() {
		return
	}

	err = emailSender.SendTemplatedEmail(
		info.Form.TenantID.Hex(),
		[]string{member.Email},
		messagingTypes.EMAIL_TYPE_DAILY_REMINDER,
		map[string]interface{}{
			"userName":    member.Name,
			"tenantName":  info.Tenant.Name,
			"projectName": info.Project.Name,
		},
	)
	if err != nil {
		slog.Error("Failed to send reminder email",
			slog.String("userID", member.ID.Hex()),
			slog.String("projectID", info.Project.ID.Hex()),
			slog.String("error", err.Error()))
		return
	}
	slog.Info("Reminder email sent", slog.String("userID", member.ID.Hex()), slog.String("projectID", info.Project.ID.Hex()))
}

const endOfDaySweepTime = "23:59"

// SweepDue reports whether a tick received at the given instant falls on
// the end-of-day sweep minute, 23:59 in UTC-12. Callers must anchor the
// decision to the tick's receipt time, not to when preceding work finished.
func SweepDue(at time.Time) (bool, error) {
	label, err := timeutils.LocalTimeLabel(timeutils.LastTimezoneName, at)
	if err != nil {
		return false, err
	}
	return label == endOfDaySweepTime, nil
}

// OnEndOfDaySweep runs once per day at 23:59 in UTC-12, when the date label
// has rolled over everywhere. Projects that still have unanswered entries
// but collected at least one response get a partial summary, unless the
// completion trigger already claimed the summary for that project/date.
func OnEndOfDaySweep(ctx context.Context) {
	endOfDaySweepAt(ctx, time.Now())
}

// OnEndOfDaySweepAt is OnEndOfDaySweep anchored to an explicit instant, so a
// caller that latched the tick's receipt time sweeps that tick's day even
// when the preceding scan ran past midnight.
func OnEndOfDaySweepAt(ctx context.Context, at time.Time) {
	endOfDaySweepAt(ctx, at)
}

func endOfDaySweepAt(ctx context.Context, now time.Time) {
	date, err := timeutils.LocalDateLabel(timeutils.LastTimezoneName, now)
	if err != nil {
		slog.Error("Failed to compute sweep date", slog.String("error", err.Error()))
		return
	}

	refs, err := standupDBService.GetProjectsWithUnansweredEntries(date)
	if err != nil {
		slog.Error("Failed to scan for unanswered entries", slog.String("date", date), slog.String("error", err.Error()))
		return
	}
	if len(refs) == 0 {
		slog.Info("End of day sweep found no projects with unanswered entries", slog.String("date", date))
		return
	}

	for _, ref := range refs {
		if ctx.Err() != nil {
			return
		}

		project, err := standupDBService.GetProjectByID(ref.TenantID, ref.ProjectID)
		if err != nil {
			slog.Error("Failed to load project for sweep", slog.String("projectID", ref.ProjectID.Hex()), slog.String("error", err.Error()))
			continue
		}

		entries, err := standupDBService.GetAnsweredEntriesForProject(ref.TenantID, ref.ProjectID, date)
		if err != nil {
			slog.Error("Failed to load answered entries for sweep", slog.String("projectID", ref.ProjectID.Hex()), slog.String("error", err.Error()))
			continue
		}
		if len(entries) == 0 {
			continue
		}

		err = standupDBService.MarkSummarySent(ref.TenantID, ref.ProjectID, date)
		if err != nil {
			if errors.Is(err, standupTypes.ErrSummaryAlreadySent) {
				continue
			}
			slog.Error("Failed to claim summary marker in sweep", slog.String("projectID", ref.ProjectID.Hex()), slog.String("error", err.Error()))
			continue
		}

		if err := sendSummaryToMembers(project, entries, date); err != nil {
			slog.Error("Failed to send sweep summary", slog.String("projectID", ref.ProjectID.Hex()), slog.String("error", err.Error()))
		}
	}
}
