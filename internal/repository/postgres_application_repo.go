package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobboard/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した応募リポジトリ。
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

const applicationColumns = `id, job_id, job_title, company, recruiter_id,
	applicant_id, applicant_email, status, applied_at`

// FindByID は指定IDの応募を取得する。見つからない場合はnilを返す。
func (r *PostgresApplicationRepo) FindByID(ctx context.Context, id string) (*model.Application, error) {
	app := &model.Application{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		id,
	).Scan(
		&app.ID, &app.JobID, &app.JobTitle, &app.Company, &app.RecruiterID,
		&app.ApplicantID, &app.ApplicantEmail, &app.Status, &app.AppliedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	return app, nil
}

// Create は応募を冪等に作成する。
// 主キーである複合IDの衝突はON CONFLICT DO NOTHINGで吸収するため、
// 同一(求人, 応募者)ペアからの二重応募は新規レコードを生まない。
// applied_atはサーバー側（DB）で採番する。
func (r *PostgresApplicationRepo) Create(ctx context.Context, app *model.Application) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (id, job_id, job_title, company, recruiter_id,
		   applicant_id, applicant_email, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING`,
		app.ID, app.JobID, app.JobTitle, app.Company, app.RecruiterID,
		app.ApplicantID, app.ApplicantEmail, app.Status,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert application: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByID は指定IDの応募を削除する。削除対象が存在した場合はtrueを返す。
func (r *PostgresApplicationRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByApplicantID は指定応募者の全応募を削除する。
func (r *PostgresApplicationRepo) DeleteByApplicantID(ctx context.Context, applicantID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE applicant_id = $1`,
		applicantID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete applications by applicant: %w", err)
	}
	return nil
}

// ListByApplicant は指定応募者の応募一覧を応募日時の降順で返す。
func (r *PostgresApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE applicant_id = $1
		 ORDER BY applied_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}
	defer rows.Close()

	return scanApplications(rows)
}

// ListByJob は指定求人への応募一覧を応募日時の降順で返す。
func (r *PostgresApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE job_id = $1
		 ORDER BY applied_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}
	defer rows.Close()

	return scanApplications(rows)
}

// ListJobIDsByApplicant は指定応募者が応募中の求人IDを返す。
func (r *PostgresApplicationRepo) ListJobIDsByApplicant(ctx context.Context, applicantID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT job_id FROM applications WHERE applicant_id = $1`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied job IDs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job IDs: %w", err)
	}
	return ids, nil
}

// DeleteOrphaned は参照先の求人が存在しない応募を削除し、削除件数を返す。
// 外部キーのCASCADE制約導入前に書き込まれた行の回収用。冪等。
func (r *PostgresApplicationRepo) DeleteOrphaned(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM applications a
		 WHERE NOT EXISTS (SELECT 1 FROM jobs j WHERE j.id = a.job_id)`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned applications: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

// scanApplications は複数行の応募を読み取る。
func scanApplications(rows *sql.Rows) ([]*model.Application, error) {
	apps := []*model.Application{}
	for rows.Next() {
		app := &model.Application{}
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.JobTitle, &app.Company, &app.RecruiterID,
			&app.ApplicantID, &app.ApplicantEmail, &app.Status, &app.AppliedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
