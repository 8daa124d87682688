package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobboard/internal/model"
)

// PostgresJobRepo はPostgreSQLを使用した求人リポジトリ。
type PostgresJobRepo struct {
	db *sql.DB
}

// NewPostgresJobRepo はPostgresJobRepoを生成する。
func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{db: db}
}

const jobColumns = `id, title, company, location, employment_type, category,
	salary, description, created_by, created_at`

// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
func (r *PostgresJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	job := &model.Job{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`,
		id,
	).Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &job.EmploymentType,
		&job.Category, &job.Salary, &job.Description, &job.CreatedBy, &job.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}

	return job, nil
}

// Create は求人を作成する。
// created_atはサーバー側（DB）で採番するため、呼び出し側のタイムスタンプは使用しない。
func (r *PostgresJobRepo) Create(ctx context.Context, job *model.Job) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO jobs (id, title, company, location, employment_type, category,
		   salary, description, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		job.ID, job.Title, job.Company, job.Location, job.EmploymentType,
		job.Category, job.Salary, job.Description, job.CreatedBy,
	).Scan(&job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// List は全求人を作成日時の降順で返す。
func (r *PostgresJobRepo) List(ctx context.Context) ([]*model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// ListByCreator は指定ユーザーが作成した求人を作成日時の降順で返す。
func (r *PostgresJobRepo) ListByCreator(ctx context.Context, userID string) ([]*model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE created_by = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by creator: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// Delete は指定IDの求人を削除する。
// 関連するapplicationsはCASCADE削除される。
func (r *PostgresJobRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM jobs WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// scanJobs は複数行の求人を読み取る。
func scanJobs(rows *sql.Rows) ([]*model.Job, error) {
	jobs := []*model.Job{}
	for rows.Next() {
		job := &model.Job{}
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Location, &job.EmploymentType,
			&job.Category, &job.Salary, &job.Description, &job.CreatedBy, &job.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// compile-time interface check
var _ JobRepository = (*PostgresJobRepo)(nil)
