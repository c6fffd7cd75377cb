package dto

import "github.com/zeenatstore/zeenat-store/internal/domain/entity"

// LoginRequest formulario de login.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

// LoginResult lleva el token de sesión firmado.
type LoginResult struct {
	Token string
	User  *entity.User
}

// ChangePasswordRequest formulario de cambio de contraseña.
type ChangePasswordRequest struct {
	OldPassword  string `form:"old_password"`
	NewPassword1 string `form:"new_password1"`
	NewPassword2 string `form:"new_password2"`
}

// SeedUser describe una cuenta que crea el comando seed.
type SeedUser struct {
	Username  string
	Password  string
	FullName  string
	Roles     []string
	Superuser bool
}
