// Package costing implementa o custo médio ponderado móvel (serviço de domínio).
// Funções puras, sem I/O: todo lançamento de razão passa por aqui para que a
// fórmula seja aplicada de forma idêntica em todos os caminhos de liquidação.
package costing

import "github.com/shopspring/decimal"

// Receipt aplica uma entrada de estoque e devolve o novo saldo e o novo custo
// médio ponderado:
//
//	novoCusto = ((saldo * custoAtual) + (qtd * custoEntrada)) / (saldo + qtd)
//
// Pré-condições garantidas pelo caller: qty > 0 e unitCost >= 0.
func Receipt(balance, avgCost, qty, unitCost decimal.Decimal) (newBalance, newAvgCost decimal.Decimal) {
	newBalance = balance.Add(qty)
	if newBalance.LessThanOrEqual(decimal.Zero) {
		return newBalance, decimal.Zero
	}
	num := balance.Mul(avgCost).Add(qty.Mul(unitCost))
	return newBalance, num.Div(newBalance)
}

// ReverseReceipt aplica o inverso algébrico de Receipt, usado na reabertura de
// uma nota finalizada:
//
//	novoCusto = ((saldo * custoAtual) - (qtd * custoEntrada)) / (saldo - qtd)
//
// A inversão só é exata se nenhum outro movimento tocou o item entre a entrada
// original e o estorno; essa garantia é do caller (guarda de movimento
// interveniente na liquidação).
func ReverseReceipt(balance, avgCost, qty, unitCost decimal.Decimal) (newBalance, newAvgCost decimal.Decimal) {
	newBalance = balance.Sub(qty)
	if newBalance.LessThanOrEqual(decimal.Zero) {
		return newBalance, decimal.Zero
	}
	num := balance.Mul(avgCost).Sub(qty.Mul(unitCost))
	newAvgCost = num.Div(newBalance)
	if newAvgCost.IsNegative() {
		// resíduo de arredondamento; custo médio nunca fica negativo
		newAvgCost = decimal.Zero
	}
	return newBalance, newAvgCost
}

// Issue aplica uma saída de estoque. Saídas não recalculam o custo médio —
// apenas debitam o saldo; quando o saldo zera, o custo médio é zerado junto
// (item sem saldo não carrega base de custo).
func Issue(balance, avgCost, qty decimal.Decimal) (newBalance, newAvgCost decimal.Decimal) {
	newBalance = balance.Sub(qty)
	if newBalance.LessThanOrEqual(decimal.Zero) {
		return newBalance, decimal.Zero
	}
	return newBalance, avgCost
}

// IssueCost devolve o custo debitado à operação consumidora: a quantidade
// valorizada ao custo médio vigente no momento da baixa.
func IssueCost(avgCost, qty decimal.Decimal) decimal.Decimal {
	return qty.Mul(avgCost)
}
