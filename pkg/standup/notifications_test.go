package standup

import (
	"context"
	"testing"
	"time"

	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"
)

func TestReminderTick(t *testing.T) {
	// Monday, 09:30 UTC
	now := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)

	t.Run("reminds only members whose local time matches", func(t *testing.T) {
		db, sender := setupTestService(t)
		// 09:30 local for the first member, 06:30 for the second
		fx := addFixture(db, "UTC", "America/Sao_Paulo")

		reminderTickAt(context.Background(), now)

		reminders := sender.byType(messagingTypes.EMAIL_TYPE_DAILY_REMINDER)
		if len(reminders) != 1 {
			t.Fatalf("expected 1 reminder, got %d", len(reminders))
		}
		if reminders[0].to[0] != fx.users[0].Email {
			t.Errorf("unexpected recipient: %v", reminders[0].to)
		}

		// the tick materialized the unanswered entry for the reminded member
		entry, err := db.GetDailyEntry(fx.users[0].ID.Hex(), fx.tenant.ID.Hex(), fx.form.ID.Hex(), "01/07/2024")
		if err != nil {
			t.Fatalf("expected entry to exist: %v", err)
		}
		if entry.IsAnswered() {
			t.Error("expected a fresh unanswered entry")
		}
	})

	t.Run("skips members who already answered", func(t *testing.T) {
		db, sender := setupTestService(t)
		fx := addFixture(db, "UTC")

		if _, err := db.GetOrCreateDailyEntry(answeredEntry(fx, fx.users[0], "01/07/2024", "done early")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reminderTickAt(context.Background(), now)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_REMINDER)); got != 0 {
			t.Errorf("expected no reminders, got %d", got)
		}
	})

	t.Run("skips days outside the notify days", func(t *testing.T) {
		db, sender := setupTestService(t)
		addFixture(db, "UTC")

		// Sunday, same time
		sunday := time.Date(2024, 6, 30, 9, 30, 0, 0, time.UTC)
		reminderTickAt(context.Background(), sunday)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_REMINDER)); got != 0 {
			t.Errorf("expected no reminders on Sunday, got %d", got)
		}
	})

	t.Run("skips minutes other than the notify time", func(t *testing.T) {
		db, sender := setupTestService(t)
		addFixture(db, "UTC")

		late := time.Date(2024, 7, 1, 9, 31, 0, 0, time.UTC)
		reminderTickAt(context.Background(), late)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_REMINDER)); got != 0 {
			t.Errorf("expected no reminders one minute late, got %d", got)
		}
	})

	t.Run("skips inactive projects", func(t *testing.T) {
		db, sender := setupTestService(t)
		fx := addFixture(db, "UTC")

		project := fx.project
		project.IsActive = false
		db.projects[project.ID.Hex()] = project
		db.currentInfos[0].Project = project

		reminderTickAt(context.Background(), now)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_REMINDER)); got != 0 {
			t.Errorf("expected no reminders for inactive project, got %d", got)
		}
	})

	t.Run("skips members with an unknown timezone", func(t *testing.T) {
		db, sender := setupTestService(t)
		fx := addFixture(db, "Not/AZone")

		reminderTickAt(context.Background(), now)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_REMINDER)); got != 0 {
			t.Errorf("expected no reminders, got %d", got)
		}
		if _, err := db.GetDailyEntry(fx.users[0].ID.Hex(), fx.tenant.ID.Hex(), fx.form.ID.Hex(), "01/07/2024"); err == nil {
			t.Error("expected no entry for skipped member")
		}
	})
}

func TestFullStandupDay(t *testing.T) {
	db, sender := setupTestService(t)
	fx := addFixture(db, "America/Sao_Paulo", "America/Sao_Paulo")

	form := fx.form
	form.NotifyDays = []string{"Monday"}
	form.NotifyTime = "09:00"
	db.forms[form.ID.Hex()] = form
	db.currentInfos[0].Form = form

	countTo := func(email string) int {
		n := 0
		for _, reminder := range sender.byType(messagingTypes.EMAIL_TYPE_DAILY_REMINDER) {
			if reminder.to[0] == email {
				n++
			}
		}
		return n
	}

	// Monday 09:00 local for both members
	firstTick := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	reminderTickAt(context.Background(), firstTick)

	if countTo(fx.users[0].Email) != 1 || countTo(fx.users[1].Email) != 1 {
		t.Fatal("expected both members to be reminded on the first tick")
	}

	const date = "01/07/2024"
	err := SubmitAnswer(fx.users[0].ID.Hex(), fx.tenant.ID.Hex(), form.ID.Hex(), date, []standupTypes.FormResponse{
		{TextQuestion: "What did you do yesterday?", OrderQuestion: 0, Answer: "shipping"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_SUMMARY)); got != 0 {
		t.Fatalf("expected no summary while a member is pending, got %d", got)
	}

	// re-run within the notify minute: only the pending member is reminded
	reminderTickAt(context.Background(), firstTick.Add(30*time.Second))

	if countTo(fx.users[0].Email) != 1 {
		t.Error("expected no further reminder for the answered member")
	}
	if countTo(fx.users[1].Email) != 2 {
		t.Error("expected the pending member to be reminded again")
	}

	err = SubmitAnswer(fx.users[1].ID.Hex(), fx.tenant.ID.Hex(), form.ID.Hex(), date, []standupTypes.FormResponse{
		{TextQuestion: "What did you do yesterday?", OrderQuestion: 0, Answer: "debugging"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summaries := sender.byType(messagingTypes.EMAIL_TYPE_DAILY_SUMMARY)
	if len(summaries) != 2 {
		t.Fatalf("expected one summary per member, got %d emails", len(summaries))
	}
	for _, summary := range summaries {
		items := summary.payload["responses"].([]responseSummaryItem)
		if len(items) != 2 {
			t.Errorf("expected both members' responses in the summary, got %d items", len(items))
		}
	}
}

func TestSweepDue(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{
			name: "23:59 in UTC-12",
			at:   time.Date(2024, 7, 2, 11, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "any second within the sweep minute",
			at:   time.Date(2024, 7, 2, 11, 59, 42, 0, time.UTC),
			want: true,
		},
		{
			name: "one minute early",
			at:   time.Date(2024, 7, 2, 11, 58, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "midnight rollover",
			at:   time.Date(2024, 7, 2, 12, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SweepDue(tt.at)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v at %s", tt.want, tt.at)
			}
		})
	}
}

func TestOnEndOfDaySweepAtUsesTheAnchoredDay(t *testing.T) {
	db, sender := setupTestService(t)
	fx := addFixture(db, "UTC", "UTC")

	// entries belong to July 1st in UTC-12
	if _, err := db.GetOrCreateDailyEntry(answeredEntry(fx, fx.users[0], "01/07/2024", "reviews")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := db.GetOrCreateDailyEntry(unansweredEntry(fx, fx.users[1], "01/07/2024")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// anchored to the sweep minute of July 1st, regardless of the wall
	// clock at call time
	OnEndOfDaySweepAt(context.Background(), time.Date(2024, 7, 2, 11, 59, 30, 0, time.UTC))

	if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_SUMMARY)); got != len(fx.users) {
		t.Errorf("expected %d summary emails for the anchored day, got %d", len(fx.users), got)
	}
}

func TestEndOfDaySweep(t *testing.T) {
	// 11:59 UTC on July 2nd is 23:59 of July 1st in UTC-12
	now := time.Date(2024, 7, 2, 11, 59, 0, 0, time.UTC)
	const date = "01/07/2024"

	t.Run("sends partial summaries for incomplete projects", func(t *testing.T) {
		db, sender := setupTestService(t)
		fx := addFixture(db, "UTC", "UTC")

		if _, err := db.GetOrCreateDailyEntry(answeredEntry(fx, fx.users[0], date, "reviews")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := db.GetOrCreateDailyEntry(unansweredEntry(fx, fx.users[1], date)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		endOfDaySweepAt(context.Background(), now)

		summaries := sender.byType(messagingTypes.EMAIL_TYPE_DAILY_SUMMARY)
		if len(summaries) != len(fx.users) {
			t.Fatalf("expected %d summary emails, got %d", len(fx.users), len(summaries))
		}
		for _, summary := range summaries {
			items, ok := summary.payload["responses"].([]responseSummaryItem)
			if !ok {
				t.Fatalf("unexpected responses payload type: %T", summary.payload["responses"])
			}
			if len(items) != 1 {
				t.Errorf("expected only the answered member's responses, got %d items", len(items))
			}
		}
	})

	t.Run("runs at most once per project and date", func(t *testing.T) {
		db, sender := setupTestService(t)
		fx := addFixture(db, "UTC", "UTC")

		if _, err := db.GetOrCreateDailyEntry(answeredEntry(fx, fx.users[0], date, "reviews")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := db.GetOrCreateDailyEntry(unansweredEntry(fx, fx.users[1], date)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		endOfDaySweepAt(context.Background(), now)
		endOfDaySweepAt(context.Background(), now)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_SUMMARY)); got != len(fx.users) {
			t.Errorf("expected %d summary emails after repeated sweeps, got %d", len(fx.users), got)
		}
	})

	t.Run("skips the sweep when the completion path already sent", func(t *testing.T) {
		db, sender := setupTestService(t)
		fx := addFixture(db, "UTC", "UTC")

		if _, err := db.GetOrCreateDailyEntry(answeredEntry(fx, fx.users[0], date, "reviews")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := db.GetOrCreateDailyEntry(unansweredEntry(fx, fx.users[1], date)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := db.MarkSummarySent(fx.tenant.ID, fx.project.ID, date); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		endOfDaySweepAt(context.Background(), now)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_SUMMARY)); got != 0 {
			t.Errorf("expected no summary emails, got %d", got)
		}
	})

	t.Run("skips projects without any answered entry", func(t *testing.T) {
		db, sender := setupTestService(t)
		fx := addFixture(db, "UTC", "UTC")

		if _, err := db.GetOrCreateDailyEntry(unansweredEntry(fx, fx.users[0], date)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		endOfDaySweepAt(context.Background(), now)

		if got := len(sender.byType(messagingTypes.EMAIL_TYPE_DAILY_SUMMARY)); got != 0 {
			t.Errorf("expected no summary emails, got %d", got)
		}
		if db.markers[markerKey(fx.tenant.ID, fx.project.ID, date)] {
			t.Error("expected no summary marker")
		}
	})
}
