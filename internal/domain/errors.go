package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências de infraestrutura).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrInvalidState      = errors.New("transição de status inválida")
	ErrAlreadyFinalized  = errors.New("nota já finalizada")
	ErrNotFinalized      = errors.New("nota não está finalizada")
	ErrEmptyNote         = errors.New("nota sem itens")
	ErrInsufficientStock = errors.New("saldo de estoque insuficiente")
)

// InsufficientStockError identifica o insumo sem saldo e as quantidades envolvidas.
// Unwrap permite errors.Is(err, ErrInsufficientStock) nos callers.
type InsufficientStockError struct {
	ItemID    int64
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("saldo insuficiente do item %d: necessário %s, disponível %s",
		e.ItemID, e.Required.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InterveningMovementError indica que o item recebeu outro movimento depois da
// liquidação que se tentou estornar. O estorno aritmético só é exato quando o
// último movimento do item é o da própria liquidação; nesse caso a operação é
// rejeitada em vez de corromper o custo médio silenciosamente.
type InterveningMovementError struct {
	ItemID int64
}

func (e *InterveningMovementError) Error() string {
	return fmt.Sprintf("item %d possui movimentação posterior à liquidação; estorno bloqueado", e.ItemID)
}

func (e *InterveningMovementError) Unwrap() error { return ErrConflict }
