package dto

type CriarFornecedorRequest struct {
	RazaoSocial string  `json:"razao_social" validate:"required"`
	CNPJ        string  `json:"cnpj"         validate:"required,len=14"`
	Telefone    *string `json:"telefone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Endereco    *string `json:"endereco"`
}

type FornecedorResponse struct {
	ID          string  `json:"id"`
	RazaoSocial string  `json:"razao_social"`
	CNPJ        string  `json:"cnpj"`
	Telefone    *string `json:"telefone"`
	Email       *string `json:"email"`
	Endereco    *string `json:"endereco"`
	Ativo       bool    `json:"ativo"`
}
