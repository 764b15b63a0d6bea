package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind identifica o tipo de movimento de estoque. Cada tipo carrega uma
// direção fixa (+1 crédito, -1 débito); a quantidade é sempre armazenada
// positiva. Substitui as tags de texto livre do legado, nas quais um typo
// quebrava relatórios sem erro algum.
type MovementKind string

const (
	MovementEntradaNota     MovementKind = "ENTRADA_NOTA"     // recebimento por nota de entrada
	MovementEntradaManual   MovementKind = "ENTRADA_MANUAL"   // entrada avulsa de insumo
	MovementEstornoNota     MovementKind = "ESTORNO_NOTA"     // reabertura de nota finalizada
	MovementSaidaProducao   MovementKind = "SAIDA_PRODUCAO"   // consumo de insumo por OP
	MovementEntradaProducao MovementKind = "ENTRADA_PRODUCAO" // crédito do produto acabado
	MovementRetornoProducao MovementKind = "RETORNO_PRODUCAO" // devolução de insumo ao reabrir OP
	MovementEstornoProducao MovementKind = "ESTORNO_PRODUCAO" // débito do produto acabado ao reabrir OP
)

// Direction devolve +1 para créditos de saldo e -1 para débitos.
func (k MovementKind) Direction() int {
	switch k {
	case MovementEntradaNota, MovementEntradaManual, MovementEntradaProducao, MovementRetornoProducao:
		return +1
	case MovementEstornoNota, MovementSaidaProducao, MovementEstornoProducao:
		return -1
	}
	return 0
}

// Valid informa se o tipo é conhecido.
func (k MovementKind) Valid() bool {
	return k.Direction() != 0
}

// Movement é um lançamento imutável do razão de estoque. Movimentos nunca são
// editados nem apagados; correções entram como novos movimentos de sentido
// oposto. EntryID/OrderID ligam o lançamento ao documento de origem — a
// reabertura usa essas referências para garantir que o estorno é exato.
type Movement struct {
	ID         string // uuid
	ItemID     int64
	Kind       MovementKind
	Quantity   decimal.Decimal  // sempre positiva; o sentido vem de Kind
	UnitCost   *decimal.Decimal // nulo nos créditos de produto acabado
	EntryID    *int64           // nota de entrada de origem, se houver
	OrderID    *int64           // ordem de produção de origem, se houver
	OccurredAt time.Time
	CreatedAt  time.Time
}
