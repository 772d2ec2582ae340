package app

import (
	"log/slog"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/presence/report"
	"github.com/ayoisaiah/presence/store"
	"github.com/ayoisaiah/presence/tracker"
)

// confirmClear asks before the event log is emptied.
func confirmClear() (bool, error) {
	var confirmed bool

	err := huh.NewConfirm().
		Title("Delete all recorded events?").
		Description("This cannot be undone").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirmed).
		Run()

	return confirmed, err
}

// clearData deletes every stored event through an idle tracker so that the
// same busy rules apply as inside a tracking run. It asks for confirmation
// unless skipConfirm is set.
func clearData(
	db store.DB,
	logger *slog.Logger,
	skipConfirm bool,
	confirm func() (bool, error),
) error {
	if !skipConfirm {
		ok, err := confirm()
		if err != nil {
			return err
		}

		if !ok {
			pterm.Info.Println("nothing was deleted")
			return nil
		}
	}

	tr, err := tracker.New(db, tracker.Options{Logger: logger})
	if err != nil {
		return err
	}

	if err := tr.ClearData(); err != nil {
		return err
	}

	logger.Info("event log cleared")

	report.Cleared()

	return nil
}
