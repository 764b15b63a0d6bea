package stock

import (
	"context"

	"github.com/minisis/producao-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação de banco, passando repositórios
// atados àquela transação. Garante a atomicidade da liquidação: ou todos os
// saldos, movimentos e o status da nota são gravados, ou nada é.
type TxRunner interface {
	RunEntry(ctx context.Context, fn func(
		entryRepo repository.StockEntryRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
