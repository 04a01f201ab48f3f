package dto

import "github.com/shopspring/decimal"

// DashboardCards are the store-wide KPIs. Monetary values come
// pre-formatted (R$ …) because the template renders them verbatim.
type DashboardCards struct {
	TotalSKUs          int    `json:"total_skus"`
	ValorEstoque       string `json:"valor_estoque"`
	AlertasCriticos    int    `json:"alertas_criticos"`
	LucroPotencial     string `json:"lucro_potencial"`
	MargemMedia        string `json:"margem_media"`
	PercentualEstoque  string `json:"percentual_estoque"`
	QtdCriticos        int    `json:"qtd_criticos"`
	QtdBaixos          int    `json:"qtd_baixos"`
	QtdZerados         int    `json:"qtd_zerados"`
	QtdReposicaoUrgent int    `json:"qtd_reposicao_urgente"`
}

// CriticalStockRow is one line of the restock-alert table.
type CriticalStockRow struct {
	SKU     string `json:"sku"`
	Produto string `json:"produto"`
	Cor     string `json:"cor"`
	Estoque int    `json:"estoque"`
	Minimo  int    `json:"minimo"`
	Status  string `json:"status"` // Crítico | Baixo
}

// ProductSummaryRow is the per-product line of the dashboard catalog table.
type ProductSummaryRow struct {
	ID             string          `json:"id"`
	Nome           string          `json:"nome"`
	Fabricante     string          `json:"fabricante"`
	Categoria      string          `json:"categoria"`
	TotalVariacoes int             `json:"total_variacoes"`
	EstoqueTotal   int             `json:"estoque_total"`
	PrecoBase      decimal.Decimal `json:"preco_base"`
}

type DashboardResponse struct {
	Dados            DashboardCards      `json:"dados"`
	ProdutosCriticos []CriticalStockRow  `json:"produtos_criticos"`
	TodosProdutos    []ProductSummaryRow `json:"todos_produtos"`
	Fornecedores     []SupplierResponse  `json:"fornecedores"`
}
