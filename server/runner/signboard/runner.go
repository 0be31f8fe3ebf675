// Package signboard periodically re-resolves labels for subjects shown on
// registered signs so that displayed prefixes do not drift after temporary
// memberships expire.
package signboard

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/grouplabel/grouplabel/server/service/label"
	"github.com/grouplabel/grouplabel/store"
)

// Runner drives the periodic sign refresh on a cron schedule.
type Runner struct {
	cron         *cron.Cron
	store        *store.Store
	labelService *label.Service
}

// NewRunner creates a runner firing on the given cron spec.
func NewRunner(st *store.Store, labelService *label.Service, spec string) (*Runner, error) {
	r := &Runner{
		cron:         cron.New(),
		store:        st,
		labelService: labelService,
	}
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return nil, errors.Wrapf(err, "invalid sign refresh spec %q", spec)
	}
	return r, nil
}

func (r *Runner) Start() {
	r.cron.Start()
	slog.Info("signboard runner started")
}

func (r *Runner) Stop() {
	r.cron.Stop()
	slog.Info("signboard runner stopped")
}

func (r *Runner) tick() {
	ctx := context.Background()
	if err := r.RefreshAll(ctx); err != nil {
		slog.Warn("sign refresh failed", "error", err)
	}
}

// RefreshAll force-refreshes the cached label of every known subject and
// reports how many signs would redraw. Expired temporary memberships get
// reconciled as a side effect of each resolution.
func (r *Runner) RefreshAll(ctx context.Context) error {
	signs, err := r.store.ListSigns(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list signs")
	}
	if len(signs) == 0 {
		return nil
	}

	subjects, err := r.store.ListSubjects(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list subjects")
	}
	for _, subject := range subjects {
		if _, err := r.labelService.ForceRefresh(ctx, subject.UUID); err != nil {
			slog.Warn("failed to refresh label", "subject", subject.UUID, "error", err)
		}
	}

	slog.Debug("sign refresh completed", "signs", len(signs), "subjects", len(subjects))
	return nil
}
