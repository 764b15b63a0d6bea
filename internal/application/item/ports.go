package item

import (
	"context"

	"github.com/minisis/producao-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação com os repositórios do razão
// atados a ela. Usado pela entrada manual de insumo, que atualiza saldo/custo
// e lança o movimento em uma única unidade atômica.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
