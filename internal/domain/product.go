package domain

// Product é um artigo do vendedor; a chave é (TenantID, SupplierArticle)
type Product struct {
	TenantID        string  `json:"tenant_id"`
	SupplierArticle string  `json:"supplier_article"`
	DisplayName     *string `json:"display_name"`
}

// Name devolve o nome de exibição ou o próprio artigo
func (p *Product) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	return p.SupplierArticle
}

type SetProductNameRequest struct {
	TenantID string  `json:"tenant_id"`
	Article  string  `json:"article"`
	Name     *string `json:"name"`
}
