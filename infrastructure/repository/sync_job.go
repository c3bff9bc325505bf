// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const syncJobsTable = "sync_jobs"

type SyncJobRepository interface {
	Enqueue(job *domain.SyncJob) (*domain.SyncJob, error)
	ClaimNextSyncJob(userID string) (*domain.SyncJob, error)
	CompleteSyncJob(userID, jobID string) error
	FailSyncJob(userID, jobID, message string) error
	CountQueued(userID string) (int, error)
}

type syncJobRepository struct {
	conn *postgres.Connection
}

func NewSyncJobRepository(conn *postgres.Connection) SyncJobRepository {
	return &syncJobRepository{
		conn: conn,
	}
}

func (r *syncJobRepository) Enqueue(job *domain.SyncJob) (*domain.SyncJob, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Status = domain.SyncJobStatusQueued

	query, args, err := squirrel.
		Insert(syncJobsTable).
		Columns("id", "user_id", "provider_id", "client_id", "timeframe_days", "status", "created_at", "updated_at").
		Values(job.ID, job.UserID, job.ProviderID, job.ClientID, job.TimeframeDays, job.Status, squirrel.Expr("NOW()"), squirrel.Expr("NOW()")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("erro ao enfileirar job de sincronização: %w", err)
	}

	return job, nil
}

// ClaimNextSyncJob toma de forma atômica o job mais antigo na fila do
// usuário. O FOR UPDATE SKIP LOCKED garante no máximo um claimant por job:
// depois de tomado, o job fica invisível para outras invocações.
func (r *syncJobRepository) ClaimNextSyncJob(userID string) (*domain.SyncJob, error) {
	query := `
		UPDATE sync_jobs SET status = $1, updated_at = NOW()
		WHERE id = (
			SELECT id FROM sync_jobs
			WHERE user_id = $2 AND status = $3
			ORDER BY created_at ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING id, user_id, provider_id, client_id, timeframe_days, status, created_at, updated_at`

	row := r.conn.QueryRow(query, domain.SyncJobStatusProcessing, userID, domain.SyncJobStatusQueued)

	job, err := scanSyncJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao tomar o próximo job da fila: %w", err)
	}

	return job, nil
}

func (r *syncJobRepository) CompleteSyncJob(userID, jobID string) error {
	return r.updateStatus(userID, jobID, domain.SyncJobStatusCompleted, nil)
}

func (r *syncJobRepository) FailSyncJob(userID, jobID, message string) error {
	return r.updateStatus(userID, jobID, domain.SyncJobStatusFailed, &message)
}

func (r *syncJobRepository) updateStatus(userID, jobID string, status domain.SyncJobStatus, message *string) error {
	builder := squirrel.
		Update(syncJobsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": jobID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	if message != nil {
		builder = builder.Set("message", *message)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do job: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job não encontrado: %s", jobID)
	}

	return nil
}

func (r *syncJobRepository) CountQueued(userID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(1)").
		From(syncJobsTable).
		Where(squirrel.Eq{"user_id": userID, "status": domain.SyncJobStatusQueued}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar jobs na fila: %w", err)
	}

	return count, nil
}

func scanSyncJob(row *sql.Row) (*domain.SyncJob, error) {
	job := &domain.SyncJob{}

	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.ProviderID,
		&job.ClientID,
		&job.TimeframeDays,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return job, nil
}
