package composition

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
)

type memItemRepo struct {
	items map[int64]*entity.Item
}

func (r *memItemRepo) GetByID(id int64) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return it, nil
}

func (r *memItemRepo) Create(item *entity.Item) (int64, error)           { return 0, nil }
func (r *memItemRepo) GetForUpdate(id int64) (*entity.Item, error)       { return r.GetByID(id) }
func (r *memItemRepo) Update(item *entity.Item) error                    { return nil }
func (r *memItemRepo) Delete(id int64) error                             { return nil }
func (r *memItemRepo) List() ([]*entity.Item, error)                     { return nil, nil }
func (r *memItemRepo) Search(field, term string) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) IsCompositionInput(id int64) (bool, error)         { return false, nil }
func (r *memItemRepo) HasComposition(id int64) (bool, error)             { return false, nil }
func (r *memItemRepo) IsInProductionOrder(id int64) (bool, error)        { return false, nil }
func (r *memItemRepo) HasMovements(id int64) (bool, error)               { return false, nil }

func (r *memItemRepo) UpdateBalanceAndCost(id int64, balance, avgCost decimal.Decimal) error {
	return nil
}

type memCompositionRepo struct {
	byProduct map[int64][]*entity.CompositionLine
}

func (r *memCompositionRepo) GetByProduct(productID int64) ([]*entity.CompositionLine, error) {
	return r.byProduct[productID], nil
}

func (r *memCompositionRepo) Replace(productID int64, lines []*entity.CompositionLine) error {
	r.byProduct[productID] = lines
	return nil
}

func newTestUseCase() (*CompositionUseCase, *memItemRepo, *memCompositionRepo) {
	itemRepo := &memItemRepo{items: map[int64]*entity.Item{
		1: {ID: 1, Description: "Pão", Kind: entity.ItemKindProduto, UnitID: 1},
		2: {ID: 2, Description: "Farinha", Kind: entity.ItemKindInsumo, UnitID: 1},
		3: {ID: 3, Description: "Fermento natural", Kind: entity.ItemKindAmbos, UnitID: 1},
		4: {ID: 4, Description: "Bolo", Kind: entity.ItemKindProduto, UnitID: 1},
	}}
	compRepo := &memCompositionRepo{byProduct: make(map[int64][]*entity.CompositionLine)}
	return NewCompositionUseCase(compRepo, itemRepo), itemRepo, compRepo
}

func qty(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReplaceComposition_SubstituiLinhas(t *testing.T) {
	uc, _, compRepo := newTestUseCase()

	err := uc.ReplaceComposition(context.Background(), 1, []*entity.CompositionLine{
		{InputID: 2, Quantity: qty("0.5")},
		{InputID: 3, Quantity: qty("0.02")},
	})
	require.NoError(t, err)
	assert.Len(t, compRepo.byProduct[1], 2)

	// substituição é total: a lista nova apaga a anterior
	err = uc.ReplaceComposition(context.Background(), 1, []*entity.CompositionLine{
		{InputID: 2, Quantity: qty("0.6")},
	})
	require.NoError(t, err)
	require.Len(t, compRepo.byProduct[1], 1)
	assert.True(t, compRepo.byProduct[1][0].Quantity.Equal(qty("0.6")))
}

func TestReplaceComposition_Validacoes(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	cases := []struct {
		name      string
		productID int64
		lines     []*entity.CompositionLine
		want      error
	}{
		{
			name:      "produto inexistente",
			productID: 99,
			want:      domain.ErrNotFound,
		},
		{
			name:      "insumo puro não tem composição",
			productID: 2,
			want:      domain.ErrInvalidInput,
		},
		{
			name:      "produto como componente de si mesmo",
			productID: 1,
			lines:     []*entity.CompositionLine{{InputID: 1, Quantity: qty("1")}},
			want:      domain.ErrInvalidInput,
		},
		{
			name:      "quantidade zero",
			productID: 1,
			lines:     []*entity.CompositionLine{{InputID: 2, Quantity: decimal.Zero}},
			want:      domain.ErrInvalidInput,
		},
		{
			name:      "insumo repetido",
			productID: 1,
			lines: []*entity.CompositionLine{
				{InputID: 2, Quantity: qty("1")},
				{InputID: 2, Quantity: qty("2")},
			},
			want: domain.ErrDuplicate,
		},
		{
			name:      "componente precisa ser consumível",
			productID: 1,
			lines:     []*entity.CompositionLine{{InputID: 4, Quantity: qty("1")}},
			want:      domain.ErrInvalidInput,
		},
		{
			name:      "insumo inexistente",
			productID: 1,
			lines:     []*entity.CompositionLine{{InputID: 55, Quantity: qty("1")}},
			want:      domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.ReplaceComposition(ctx, tc.productID, tc.lines)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReplaceComposition_ItemAmbosComoComponente(t *testing.T) {
	uc, _, compRepo := newTestUseCase()

	// item "Ambos" pode compor outro produto
	err := uc.ReplaceComposition(context.Background(), 1, []*entity.CompositionLine{
		{InputID: 3, Quantity: qty("0.1")},
	})
	require.NoError(t, err)
	assert.Len(t, compRepo.byProduct[1], 1)
}
