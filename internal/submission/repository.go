package submission

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/submitez/submitez/pkg/pagination"
	"github.com/submitez/submitez/pkg/query"
	"github.com/submitez/submitez/pkg/repository"
	"github.com/submitez/submitez/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a submission repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "submissions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Submission], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "BrokerName", "CarrierName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	subs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSubmission)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	result := pagination.NewPageResult(subs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Submission, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSubmission)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Submission, error) {
	sub := NewSubmission()
	sub.BrokerName = cmd.BrokerName
	sub.BrokerEmail = cmd.BrokerEmail
	sub.CarrierName = cmd.CarrierName
	sub.EffectiveDateRequested = cmd.EffectiveDateRequested
	sub.Notes = cmd.Notes

	q := `
		INSERT INTO submissions(id, status, broker_name, broker_email, carrier_name, effective_date_requested, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertArgs := []any{
		sub.ID,
		sub.Status,
		sub.BrokerName,
		sub.BrokerEmail,
		sub.CarrierName,
		sub.EffectiveDateRequested,
		sub.Notes,
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, q, insertArgs...); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("submission created", "id", sub.ID, "broker", sub.BrokerName)
	return r.Find(ctx, sub.ID)
}

func (r *repo) Save(ctx context.Context, sub *Submission) (*Submission, error) {
	cols, err := marshalColumns(sub)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE submissions SET
			status = $2,
			applicant = $3,
			locations = $4,
			coverage = $5,
			loss_history = $6,
			uploaded_files = $7,
			generated_files = $8,
			validation_errors = $9,
			validation_warnings = $10,
			is_valid = $11,
			extraction_metadata = $12,
			extraction_confidence = $13,
			broker_name = $14,
			broker_email = $15,
			carrier_name = $16,
			effective_date_requested = $17,
			notes = $18,
			internal_notes = $19,
			updated_at = now(),
			submitted_at = $20,
			extracted_at = $21,
			validated_at = $22,
			generated_at = $23
		WHERE id = $1`

	updateArgs := []any{
		sub.ID,
		sub.Status,
		cols["applicant"],
		cols["locations"],
		cols["coverage"],
		cols["loss_history"],
		cols["uploaded_files"],
		cols["generated_files"],
		cols["validation_errors"],
		cols["validation_warnings"],
		sub.IsValid,
		cols["extraction_metadata"],
		sub.ExtractionConfidence,
		sub.BrokerName,
		sub.BrokerEmail,
		sub.CarrierName,
		sub.EffectiveDateRequested,
		sub.Notes,
		sub.InternalNotes,
		sub.SubmittedAt,
		sub.ExtractedAt,
		sub.ValidatedAt,
		sub.GeneratedAt,
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(ctx, tx, q, updateArgs...); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return r.Find(ctx, sub.ID)
}

func (r *repo) Transition(ctx context.Context, id uuid.UUID, next Status) (*Submission, error) {
	sub, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sub.UpdateStatus(next); err != nil {
		return nil, err
	}

	saved, err := r.Save(ctx, sub)
	if err != nil {
		return nil, err
	}

	r.logger.Info("submission status changed", "id", id, "status", next)
	return saved, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	sub, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM submissions WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	for _, ref := range append(sub.UploadedFiles, sub.GeneratedFiles...) {
		if delErr := r.storage.Delete(ctx, ref.StorageKey); delErr != nil {
			r.logger.Warn(
				"blob delete failed after DB delete",
				"key", ref.StorageKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("submission deleted", "id", id)
	return nil
}
