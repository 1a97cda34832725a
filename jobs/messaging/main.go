package main

import (
	"log/slog"
	"sync"
	"time"

	emailsending "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/email-sending"
)

const (
	LAST_SEND_ATTEMPT_LOCK_DURATION = 60 * time.Minute

	OUTGOING_EMAILS_BATCH_SIZE = 10

	MAX_FAILED_ATTEMPTS_BEFORE_STOP = 100
)

func main() {
	slog.Info("Starting messaging job")
	start := time.Now()

	var wg sync.WaitGroup

	if conf.RunTasks.ProcessOutgoingEmails {
		wg.Add(1)
		go handleOutgoingMessages(&wg)
	}

	wg.Wait()
	slog.Info("Messaging job completed", slog.String("duration", time.Since(start).String()))
}

func handleOutgoingMessages(wg *sync.WaitGroup) {
	defer wg.Done()
	slog.Info("Start handling outgoing messages")

	counters := InitMessageCounter()
	for {
		if counters.Failed > MAX_FAILED_ATTEMPTS_BEFORE_STOP {
			slog.Error("Too many failed attempts, stopping outgoing messages")
			break
		}
		outgoingEmails, err := messagingDBService.GetOutgoingEmailsForSending(
			time.Now().Add(-LAST_SEND_ATTEMPT_LOCK_DURATION).Unix(),
			OUTGOING_EMAILS_BATCH_SIZE,
		)
		if err != nil {
			slog.Error("Failed to get outgoing emails for sending", slog.String("error", err.Error()))
			break
		}

		if len(outgoingEmails) == 0 {
			break
		}

		lastFetch := time.Now()

		// Send emails:
		for _, email := range outgoingEmails {
			batchDuration := time.Since(lastFetch)
			if batchDuration >= LAST_SEND_ATTEMPT_LOCK_DURATION {
				slog.Warn("Last batch took too long, breaking", slog.String("duration", batchDuration.String()))
				counters.IncreaseCounter(false)

				err = messagingDBService.ResetLastSendAttemptForOutgoing(email.ID.Hex())
				if err != nil {
					slog.Error("Failed to reset last send attempt for outgoing email", slog.String("error", err.Error()))
				}
				continue
			}

			err := emailsending.SendOutgoingEmail(&email)
			if err != nil {
				counters.IncreaseCounter(false)
				slog.Error("Failed to send email", slog.String("messageType", email.MessageType), slog.String("error", err.Error()))

				err = messagingDBService.ResetLastSendAttemptForOutgoing(email.ID.Hex())
				if err != nil {
					slog.Error("Failed to reset last send attempt for outgoing email", slog.String("messageType", email.MessageType), slog.String("error", err.Error()))
				}
				continue
			}

			_, err = messagingDBService.AddToSentEmails(email)
			if err != nil {
				counters.IncreaseCounter(false)
				slog.Error("Failed to save sent email", slog.String("error", err.Error()))
				continue
			}
			err = messagingDBService.DeleteOutgoingEmail(email.ID.Hex())
			if err != nil {
				slog.Error("Failed to delete outgoing email", slog.String("messageType", email.MessageType), slog.String("error", err.Error()))
			}
			counters.IncreaseCounter(true)
		}
	}

	counters.Stop()
	slog.Info("Finished handling outgoing messages", slog.Int64("duration", counters.Duration), slog.Int("success", counters.Success), slog.Int("failed", counters.Failed))
}
