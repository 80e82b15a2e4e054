package report

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report data access interface
type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]Report, error)
	ListOpen(ctx context.Context) ([]Report, error)
	Update(ctx context.Context, report *Report) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO maintenance_reports
			(id, room_id, reporter_id, description, category, urgency, summary, suggested_action, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.RoomID, report.ReporterID, report.Description,
		report.Category, report.Urgency, report.Summary, report.SuggestedAction,
		report.Status, report.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	var report Report
	err := r.db.GetContext(ctx, &report, `SELECT * FROM maintenance_reports WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]Report, error) {
	query := `SELECT * FROM maintenance_reports WHERE room_id = $1 ORDER BY created_at DESC`
	var out []Report
	err := r.db.SelectContext(ctx, &out, query, roomID)
	return out, err
}

func (r *repository) ListOpen(ctx context.Context) ([]Report, error) {
	query := `SELECT * FROM maintenance_reports WHERE status = $1 ORDER BY created_at DESC`
	var out []Report
	err := r.db.SelectContext(ctx, &out, query, StatusOpen)
	return out, err
}

func (r *repository) Update(ctx context.Context, report *Report) error {
	query := `
		UPDATE maintenance_reports
		SET status = $2, resolved_at = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, report.ID, report.Status, report.ResolvedAt)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrReportNotFound
	}
	return nil
}
