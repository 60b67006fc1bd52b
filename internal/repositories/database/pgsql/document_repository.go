package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
	"github.com/scholarbase/scholarship_portal_api/internal/utils/mapping"
	"github.com/scholarbase/scholarship_portal_api/internal/utils/pagination"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryFacade
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, scholar_id, title, kind, file_ref, generated, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.ScholarID,
		&m.Title,
		&m.Kind,
		&m.FileRef,
		&m.Generated,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDocumentByID retrieves a single document.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}
	document := mapping.ToDomainDocument(*m)
	return &document, nil
}

// ListDocumentsByScholar retrieves a paginated list of one scholar's documents.
func (r *PgxDocumentRepository) ListDocumentsByScholar(ctx context.Context, scholarID string, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + documentColumns + ` FROM documents WHERE scholar_id = $1`
	args := []interface{}{scholarID}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, document_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += ` ORDER BY created_at DESC, document_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query documents for scholar "+scholarID, err)
	}
	defer rows.Close()

	modelDocuments := make([]models.Document, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row for scholar "+scholarID, scanErr)
		}
		modelDocuments = append(modelDocuments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows for scholar "+scholarID, err)
	}

	var nextTokenVal *string
	results := modelDocuments
	if len(modelDocuments) > limit {
		last := modelDocuments[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DocumentID)
		nextTokenVal = &token
		results = modelDocuments[:limit]
	}

	documents := make([]domain.Document, len(results))
	for i, m := range results {
		documents[i] = mapping.ToDomainDocument(m)
	}
	return documents, nextTokenVal, nil
}

// SaveDocument persists a new document and its audit record in one transaction.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDocument(document)
	insertQuery := `
		INSERT INTO documents (document_id, scholar_id, title, kind, file_ref, generated, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.DocumentID,
		m.ScholarID,
		m.Title,
		m.Kind,
		m.FileRef,
		m.Generated,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "scholar "+m.ScholarID+" does not exist", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteDocument removes a document and appends the audit record in one transaction.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID + " not found for delete")
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
