package entity

// Unit é a unidade de medida dos itens (catálogo fixo, semeado na migração).
type Unit struct {
	ID     int64
	Name   string
	Symbol string // sigla: g, kg, ml, L, un
}
