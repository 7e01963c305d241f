package tenant

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/seller-analytics-bot/infrastructure/repository"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/pkg/apiErrors"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

type TenantService interface {
	CreateTenant(ctx context.Context, request *domain.CreateSellerAccountRequest) (*domain.SellerAccount, error)
	// ListTenants devolve as lojas na ordem de cadastro, que é a ordem usada nos relatórios
	ListTenants(ctx context.Context) ([]*domain.SellerAccount, error)
	RenameTenant(ctx context.Context, request *domain.UpdateSellerAccountRequest) error
	DeleteTenant(ctx context.Context, id string) error
	SetProductName(ctx context.Context, request *domain.SetProductNameRequest) error
	ListProducts(ctx context.Context, tenantID string) ([]*domain.Product, error)
}

type Service struct {
	tenantRepo  repository.TenantRepository
	productRepo repository.ProductRepository
	generateID  func() (string, error)
}

func NewService(tenantRepo repository.TenantRepository, productRepo repository.ProductRepository) TenantService {
	return &Service{
		tenantRepo:  tenantRepo,
		productRepo: productRepo,
		generateID:  utils.GenerateID,
	}
}

func trimmedName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *Service) CreateTenant(ctx context.Context, request *domain.CreateSellerAccountRequest) (*domain.SellerAccount, error) {
	if request == nil || strings.TrimSpace(request.Credential) == "" {
		return nil, NewTenantError(ErrCredentialRequired, apiErrors.ErrMissingRequiredData, "O token da API é obrigatório")
	}

	id, err := s.generateID()
	if err != nil {
		return nil, NewTenantError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	tenant := &domain.SellerAccount{
		ID:         id,
		Name:       trimmedName(request.Name),
		Credential: strings.TrimSpace(request.Credential),
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewTenantError(ErrDuplicateCredential, apiErrors.ErrTenantDuplicate, "Já existe uma loja com este token")
		}
		log.ForContext(ctx).WithError(err).Error("Erro ao cadastrar loja")
		return nil, NewTenantError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao cadastrar loja no banco de dados")
	}

	log.ForContext(ctx).WithField("tenant_id", tenant.ID).Info("Loja cadastrada")

	return tenant, nil
}

func (s *Service) ListTenants(ctx context.Context) ([]*domain.SellerAccount, error) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar lojas")
		return nil, NewTenantError(ErrFetchTenants, apiErrors.ErrDatabaseOperation, "Falha ao listar lojas no banco de dados")
	}

	if tenants == nil {
		return []*domain.SellerAccount{}, nil
	}

	return tenants, nil
}

func (s *Service) RenameTenant(ctx context.Context, request *domain.UpdateSellerAccountRequest) error {
	if request == nil || request.ID == "" {
		return NewTenantError(ErrTenantIDRequired, apiErrors.ErrMissingRequiredData, "ID da loja é obrigatório")
	}

	if err := s.tenantRepo.Rename(ctx, request.ID, trimmedName(request.Name)); err != nil {
		return s.translate(ctx, request.ID, err, "Falha ao renomear loja")
	}

	return nil
}

func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	if id == "" {
		return NewTenantError(ErrTenantIDRequired, apiErrors.ErrMissingRequiredData, "ID da loja é obrigatório")
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return s.translate(ctx, id, err, "Falha ao remover loja")
	}

	log.ForContext(ctx).WithField("tenant_id", id).Info("Loja removida")

	return nil
}

// SetProductName define ou limpa (nome vazio) o nome de exibição de um artigo
func (s *Service) SetProductName(ctx context.Context, request *domain.SetProductNameRequest) error {
	if request == nil || request.TenantID == "" {
		return NewTenantError(ErrTenantIDRequired, apiErrors.ErrMissingRequiredData, "ID da loja é obrigatório")
	}
	article := strings.TrimSpace(request.Article)
	if article == "" {
		return NewTenantErrorWithID(ErrArticleRequired, apiErrors.ErrMissingRequiredData, request.TenantID, "Artigo é obrigatório")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, request.TenantID)
	if err != nil {
		return s.translate(ctx, request.TenantID, err, "Falha ao buscar loja")
	}
	if tenant == nil {
		return NewTenantErrorWithID(ErrTenantNotFound, apiErrors.ErrTenantNotFound, request.TenantID, "Loja não encontrada")
	}

	if err := s.productRepo.SetDisplayName(ctx, request.TenantID, article, trimmedName(request.Name)); err != nil {
		return s.translate(ctx, request.TenantID, err, "Falha ao salvar nome do artigo")
	}

	return nil
}

func (s *Service) ListProducts(ctx context.Context, tenantID string) ([]*domain.Product, error) {
	if tenantID == "" {
		return nil, NewTenantError(ErrTenantIDRequired, apiErrors.ErrMissingRequiredData, "ID da loja é obrigatório")
	}

	products, err := s.productRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, s.translate(ctx, tenantID, err, "Falha ao listar artigos")
	}

	return products, nil
}

func (s *Service) translate(ctx context.Context, tenantID string, err error, details string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NewTenantErrorWithID(ErrTenantNotFound, apiErrors.ErrTenantNotFound, tenantID, "Loja não encontrada")
	}

	log.ForContext(ctx).WithError(err).WithField("tenant_id", tenantID).Error(details)
	return NewTenantErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, tenantID, details)
}
