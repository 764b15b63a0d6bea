package production

import (
	"context"

	"github.com/minisis/producao-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação de banco com os repositórios da
// liquidação de produção atados àquela transação. A finalização de uma ordem
// com várias linhas é uma única transação: se a checagem de saldo de qualquer
// linha falhar, nada do que foi lançado para as linhas anteriores permanece.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		orderRepo repository.ProductionOrderRepository,
		compRepo repository.CompositionRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
