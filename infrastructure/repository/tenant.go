package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/database/postgres"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

const (
	sellerAccountsTable = "seller_accounts"

	uniqueViolationCode = "23505"
)

var (
	ErrDuplicate = errors.New("registro duplicado")
	ErrNotFound  = errors.New("registro não encontrado")
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.SellerAccount) error
	List(ctx context.Context) ([]*domain.SellerAccount, error)
	GetByID(ctx context.Context, id string) (*domain.SellerAccount, error)
	Rename(ctx context.Context, id string, name *string) error
	Delete(ctx context.Context, id string) error
}

type tenantRepository struct {
	conn *postgres.Connection
}

func NewTenantRepository(conn *postgres.Connection) TenantRepository {
	return &tenantRepository{
		conn: conn,
	}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.SellerAccount) error {
	query, args, err := squirrel.
		Insert(sellerAccountsTable).
		Columns("id", "name", "credential").
		Values(tenant.ID, tenant.Name, tenant.Credential).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&tenant.CreatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

// List devolve as lojas na ordem de cadastro, que é a ordem de processamento do fan-out
func (r *tenantRepository) List(ctx context.Context) ([]*domain.SellerAccount, error) {
	query, args, err := squirrel.
		Select("id", "name", "credential", "created_at").
		From(sellerAccountsTable).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	tenants := make([]*domain.SellerAccount, 0)
	for rows.Next() {
		tenant := &domain.SellerAccount{}
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.Credential, &tenant.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a loja: %w", err)
		}
		tenants = append(tenants, tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return tenants, nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.SellerAccount, error) {
	query, args, err := squirrel.
		Select("id", "name", "credential", "created_at").
		From(sellerAccountsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	tenant := &domain.SellerAccount{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&tenant.ID, &tenant.Name, &tenant.Credential, &tenant.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return tenant, nil
}

func (r *tenantRepository) Rename(ctx context.Context, id string, name *string) error {
	query, args, err := squirrel.
		Update(sellerAccountsTable).
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return r.execAffectingOne(ctx, query, args...)
}

// Delete remove a loja; os produtos são removidos em cascata pela chave estrangeira
func (r *tenantRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(sellerAccountsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return r.execAffectingOne(ctx, query, args...)
}

func (r *tenantRepository) execAffectingOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		}
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
