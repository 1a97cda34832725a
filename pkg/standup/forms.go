package standup

import (
	"log/slog"
)

// ActivateForm makes the given form the single active one of its project.
// Any sibling form that was active before is deactivated first.
func ActivateForm(tenantID string, formID string) error {
	if err := standupDBService.ActivateForm(tenantID, formID); err != nil {
		return err
	}
	slog.Info("form activated",
		slog.String("tenantID", tenantID),
		slog.String("formID", formID))
	return nil
}
