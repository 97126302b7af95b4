// Package sheets defines the ports for mirroring target settings to an
// external spreadsheet.
package sheets

import (
	"context"

	"territory/internal/core"
)

// SettingsMirror mirrors target settings changes to a spreadsheet row
// keyed by owner.
type SettingsMirror interface {
	UpsertSettings(ctx context.Context, s core.TargetSettings) error
	DeleteSettings(ctx context.Context, ownerID string) error
}
