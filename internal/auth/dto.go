package auth

// LoginRequest is the login body.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// ChangePasswordRequest is the password rotation body.
type ChangePasswordRequest struct {
	SenhaAtual string `json:"senhaAtual" validate:"required"`
	NovaSenha  string `json:"novaSenha" validate:"required,min=6"`
}

type detailBody struct {
	Detail string `json:"detail"`
}
