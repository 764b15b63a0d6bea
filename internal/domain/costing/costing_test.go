package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minisis/producao-api/internal/domain/costing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Cenário de referência: 10 un. a 2,00 e depois 5 un. a 5,00 devem resultar em
// saldo 15 e custo médio (10*2 + 5*5)/15 = 3,00.
func TestReceipt_MediaPonderada(t *testing.T) {
	bal, avg := costing.Receipt(decimal.Zero, decimal.Zero, dec("10"), dec("2.00"))
	require.True(t, bal.Equal(dec("10")))
	require.True(t, avg.Equal(dec("2.00")), "primeira entrada assume o custo da entrada, obtido %s", avg)

	bal, avg = costing.Receipt(bal, avg, dec("5"), dec("5.00"))
	assert.True(t, bal.Equal(dec("15")))
	assert.True(t, avg.Equal(dec("3")), "custo médio esperado 3, obtido %s", avg)
}

// O custo médio após qualquer sequência de entradas deve bater com a rederivação
// do zero: Σ(qtd_i * custo_i) / Σ(qtd_i).
func TestReceipt_IdentidadeComRederivacao(t *testing.T) {
	entries := []struct{ qty, cost string }{
		{"3.5", "1.25"},
		{"10", "0.80"},
		{"0.25", "14.10"},
		{"7", "2.3333"},
		{"120", "0.0199"},
	}

	bal, avg := decimal.Zero, decimal.Zero
	sumQty, sumVal := decimal.Zero, decimal.Zero
	for _, e := range entries {
		q, c := dec(e.qty), dec(e.cost)
		bal, avg = costing.Receipt(bal, avg, q, c)
		sumQty = sumQty.Add(q)
		sumVal = sumVal.Add(q.Mul(c))
	}

	expected := sumVal.Div(sumQty)
	diff := avg.Sub(expected).Abs()
	assert.True(t, diff.LessThan(dec("0.0000000001")),
		"custo médio incremental %s diverge da rederivação %s", avg, expected)
}

func TestIssue_NaoAlteraCustoMedio(t *testing.T) {
	bal, avg := costing.Issue(dec("15"), dec("3.00"), dec("6"))
	assert.True(t, bal.Equal(dec("9")))
	assert.True(t, avg.Equal(dec("3.00")))

	charged := costing.IssueCost(dec("3.00"), dec("6"))
	assert.True(t, charged.Equal(dec("18.00")), "baixa de 6 un. a 3,00 deve custar 18,00")
}

func TestIssue_SaldoZeradoZeraCusto(t *testing.T) {
	bal, avg := costing.Issue(dec("4"), dec("7.50"), dec("4"))
	assert.True(t, bal.IsZero())
	assert.True(t, avg.IsZero(), "item zerado não carrega base de custo")
}

// Reabrir uma entrada deve restaurar exatamente (saldo, custo) anteriores,
// desde que nenhum movimento tenha tocado o item no intervalo.
func TestReverseReceipt_InversoExato(t *testing.T) {
	cases := []struct{ bal, avg, qty, cost string }{
		{"0", "0", "10", "2.00"},
		{"10", "2.00", "5", "5.00"},
		{"3.75", "1.3333", "0.25", "9.99"},
		{"100", "0.50", "100", "0.75"},
	}
	for _, c := range cases {
		before, beforeAvg := dec(c.bal), dec(c.avg)
		midBal, midAvg := costing.Receipt(before, beforeAvg, dec(c.qty), dec(c.cost))
		afterBal, afterAvg := costing.ReverseReceipt(midBal, midAvg, dec(c.qty), dec(c.cost))

		assert.True(t, afterBal.Equal(before), "saldo: esperado %s, obtido %s", before, afterBal)
		diff := afterAvg.Sub(beforeAvg).Abs()
		assert.True(t, diff.LessThan(dec("0.0000000001")),
			"custo: esperado %s, obtido %s", beforeAvg, afterAvg)
	}
}

func TestReverseReceipt_SaldoZeradoZeraCusto(t *testing.T) {
	bal, avg := costing.ReverseReceipt(dec("10"), dec("2.00"), dec("10"), dec("2.00"))
	assert.True(t, bal.IsZero())
	assert.True(t, avg.IsZero())
}
