package importer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// ImportedDescription is the description given to every imported task.
const ImportedDescription = "Importado da API externa"

// Reconciler inserts external records whose title is not yet stored.
//
// Concurrent runs are not serialized: two runs racing on the same new title
// can both insert it. The duplicate cleanup in the maintenance service
// removes such rows.
type Reconciler struct {
	db     store.TxBeginner
	tasks  store.TaskStore
	source Source
	now    func() time.Time
}

// NewReconciler creates a Reconciler.
func NewReconciler(db store.TxBeginner, tasks store.TaskStore, source Source) *Reconciler {
	return &Reconciler{
		db:     db,
		tasks:  tasks,
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run fetches from the source and reconciles the result. A fetch failure
// returns ErrUpstreamFetch before anything is written.
func (r *Reconciler) Run(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).With(slog.String("import_run_id", uuid.NewString()))
	ctx = logger.WithLogger(ctx, log)

	records, err := r.source.Fetch(ctx)
	if err != nil {
		log.Error("external fetch failed", slog.String("error", err.Error()))
		return 0, err
	}
	log.Info("external records fetched", slog.Int("count", len(records)))

	return r.Reconcile(ctx, records)
}

// Reconcile inserts every record whose title does not already exist and
// returns the number inserted. All writes happen in one transaction; a
// title repeated within the batch is inserted once. Records that fail task
// validation are skipped.
func (r *Reconciler) Reconcile(ctx context.Context, records []ExternalRecord) (int, error) {
	log := logger.FromContext(ctx)
	if len(records) == 0 {
		return 0, nil
	}

	inserted := 0
	skipped := 0
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := r.tasks.WithTx(tx)
		now := r.now()

		for _, rec := range records {
			task, err := newImportedTask(rec, now)
			if err != nil {
				skipped++
				log.Warn("skipping invalid external record",
					slog.Int("external_id", rec.ID),
					slog.String("error", err.Error()))
				continue
			}

			exists, err := tasks.ExistsByTitle(ctx, task.Title)
			if err != nil {
				return fmt.Errorf("check title of external record %d: %w", rec.ID, err)
			}
			if exists {
				continue
			}
			if err := tasks.Create(ctx, task); err != nil {
				return fmt.Errorf("insert external record %d: %w", rec.ID, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		log.Error("reconciliation failed", slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("reconciliation complete",
		slog.Int("received", len(records)),
		slog.Int("inserted", inserted),
		slog.Int("skipped_invalid", skipped))
	return inserted, nil
}

func newImportedTask(rec ExternalRecord, now time.Time) (*domain.Task, error) {
	state := domain.TaskStatePending
	if rec.Completed {
		state = domain.TaskStateDone
	}
	desc := ImportedDescription
	return domain.NewTask(domain.TaskInput{
		Title:       rec.Title,
		Description: &desc,
		State:       state,
	}, now)
}
