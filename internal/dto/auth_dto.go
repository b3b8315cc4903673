package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expires_in"` // seconds
	Usuario   UsuarioResponse `json:"usuario"`
}

type CriarUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3"`
	Nome     string  `json:"nome"     validate:"required"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Perfil   string  `json:"perfil"   validate:"required,oneof=caixa gerente admin"`
}

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nome     string  `json:"nome"`
	Email    *string `json:"email"`
	Perfil   string  `json:"perfil"`
	Ativo    bool    `json:"ativo"`
}
