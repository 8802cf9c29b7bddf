package catalog

import "github.com/resultado/dre/internal/model"

// DefaultChart returns a standard DRE skeleton.
func DefaultChart() []model.CatalogEntry {
	const t = model.AccountTypeDRE
	return []model.CatalogEntry{
		{Classification: "3", Name: "RESULTADO DO EXERCÍCIO", Depth: 1, AccountType: t},
		{Classification: "3.01", Name: "Receita Bruta", Depth: 2, AccountType: t},
		{Classification: "3.01.01", Name: "Receita de Vendas de Produtos", Depth: 3, AccountType: t},
		{Classification: "3.01.02", Name: "Receita de Prestação de Serviços", Depth: 3, AccountType: t},
		{Classification: "3.02", Name: "(-) Deduções da Receita Bruta", Depth: 2, AccountType: t},
		{Classification: "3.02.01", Name: "(-) Impostos sobre Vendas", Depth: 3, AccountType: t},
		{Classification: "3.02.02", Name: "(-) Devoluções e Abatimentos", Depth: 3, AccountType: t},
		{Classification: "3.03", Name: "(-) Custos", Depth: 2, AccountType: t},
		{Classification: "3.03.01", Name: "(-) Custo dos Produtos Vendidos", Depth: 3, AccountType: t},
		{Classification: "3.03.02", Name: "(-) Custo dos Serviços Prestados", Depth: 3, AccountType: t},
		{Classification: "3.04", Name: "(-) Despesas Operacionais", Depth: 2, AccountType: t},
		{Classification: "3.04.01", Name: "(-) Despesas Administrativas", Depth: 3, AccountType: t},
		{Classification: "3.04.02", Name: "(-) Despesas Comerciais", Depth: 3, AccountType: t},
		{Classification: "3.05", Name: "Resultado Financeiro", Depth: 2, AccountType: t},
		{Classification: "3.05.01", Name: "Receitas Financeiras", Depth: 3, AccountType: t},
		{Classification: "3.05.02", Name: "(-) Despesas Financeiras", Depth: 3, AccountType: t},
		{Classification: "3.06", Name: "(-) Provisão para IR e CSLL", Depth: 2, AccountType: t},
	}
}
