package entity

// Supplier é o cadastro de fornecedor. CNPJ e CEP são armazenados como texto;
// validação de documento e consulta de endereço ficam fora deste serviço.
type Supplier struct {
	ID          int64
	LegalName   string // razão social
	TradeName   string // nome fantasia
	CNPJ        string
	Status      string // Ativo / Inativo
	Phone       string
	Email       string
	Street      string
	Number      string
	Complement  string
	District    string
	City        string
	State       string
	PostalCode  string
}
