package types

import "errors"

var (
	// ErrEntryNotFound is returned when an answer targets a daily entry that
	// was never created for that (user, tenant, form, date) key.
	ErrEntryNotFound = errors.New("daily entry not found")

	// ErrAlreadyAnswered is returned when a daily entry already holds
	// responses; entries are answered exactly once.
	ErrAlreadyAnswered = errors.New("daily entry already answered")

	// ErrSummaryAlreadySent signals that the summary marker for a
	// project/date pair was already claimed by another path.
	ErrSummaryAlreadySent = errors.New("summary already sent for project and date")
)
