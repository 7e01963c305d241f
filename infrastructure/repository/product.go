package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/database/postgres"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

const (
	productsTable = "products"

	ensureBatchSize = 500
)

type ProductRepository interface {
	EnsureProducts(ctx context.Context, tenantID string, articles []string) error
	GetDisplayNames(ctx context.Context, tenantID string) (map[string]string, error)
	SetDisplayName(ctx context.Context, tenantID, article string, name *string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

// EnsureProducts cria os artigos ainda não vistos, sem tocar nos nomes já definidos
func (r *productRepository) EnsureProducts(ctx context.Context, tenantID string, articles []string) error {
	if len(articles) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(articles); start += ensureBatchSize {
			end := start + ensureBatchSize
			if end > len(articles) {
				end = len(articles)
			}

			query := squirrel.StatementBuilder.
				Insert(productsTable).
				Columns("tenant_id", "supplier_article").
				PlaceholderFormat(squirrel.Dollar)

			for _, article := range articles[start:end] {
				query = query.Values(tenantID, article)
			}

			sqlQuery, args, err := query.Suffix("ON CONFLICT (tenant_id, supplier_article) DO NOTHING").ToSql()
			if err != nil {
				return fmt.Errorf("failed to build query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return translateError(err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"articles":  len(articles),
		}).Debug("Artigos garantidos na base")

		return nil
	})
}

// GetDisplayNames devolve apenas os artigos com nome definido (artigo -> nome)
func (r *productRepository) GetDisplayNames(ctx context.Context, tenantID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("supplier_article", "display_name").
		From(productsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.NotEq{"display_name": nil}).
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

	names := make(map[string]string)
	for rows.Next() {
		var article, name string
		if err := rows.Scan(&article, &name); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o produto: %w", err)
		}
		names[article] = name
	}

	return names, rows.Err()
}

// SetDisplayName define ou limpa (nil) o nome de exibição de um artigo
func (r *productRepository) SetDisplayName(ctx context.Context, tenantID, article string, name *string) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(productsTable).
		Columns("tenant_id", "supplier_article", "display_name").
		Values(tenantID, article, name).
		Suffix("ON CONFLICT (tenant_id, supplier_article) DO UPDATE SET display_name = EXCLUDED.display_name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *productRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Product, error) {
	query, args, err := squirrel.
		Select("tenant_id", "supplier_article", "display_name").
		From(productsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("supplier_article ASC").
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

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		if err := rows.Scan(&product.TenantID, &product.SupplierArticle, &product.DisplayName); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o produto: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}
