package dto

import "github.com/minisis/producao-api/internal/domain/entity"

// SupplierRequest body para criar/atualizar fornecedor. CNPJ e CEP são texto
// livre; validação de documento fica fora deste serviço.
type SupplierRequest struct {
	LegalName  string `json:"legal_name" validate:"required"`
	TradeName  string `json:"trade_name"`
	CNPJ       string `json:"cnpj"`
	Status     string `json:"status" validate:"omitempty,oneof=Ativo Inativo"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// ToSupplierEntity converte o body para a entidade.
func (r SupplierRequest) ToSupplierEntity(id int64) *entity.Supplier {
	return &entity.Supplier{
		ID:         id,
		LegalName:  r.LegalName,
		TradeName:  r.TradeName,
		CNPJ:       r.CNPJ,
		Status:     r.Status,
		Phone:      r.Phone,
		Email:      r.Email,
		Street:     r.Street,
		Number:     r.Number,
		Complement: r.Complement,
		District:   r.District,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
	}
}

// SupplierResponse fornecedor na resposta.
type SupplierResponse struct {
	ID         int64  `json:"id"`
	LegalName  string `json:"legal_name"`
	TradeName  string `json:"trade_name"`
	CNPJ       string `json:"cnpj"`
	Status     string `json:"status"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// ToSupplierResponse converte a entidade para o DTO de resposta.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:         s.ID,
		LegalName:  s.LegalName,
		TradeName:  s.TradeName,
		CNPJ:       s.CNPJ,
		Status:     s.Status,
		Phone:      s.Phone,
		Email:      s.Email,
		Street:     s.Street,
		Number:     s.Number,
		Complement: s.Complement,
		District:   s.District,
		City:       s.City,
		State:      s.State,
		PostalCode: s.PostalCode,
	}
}
