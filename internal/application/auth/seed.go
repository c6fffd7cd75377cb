package auth

import (
	"context"
	"fmt"

	"github.com/zeenatstore/zeenat-store/internal/application/dto"
	"github.com/zeenatstore/zeenat-store/internal/domain/access"
)

// Usernames fijos de las cuentas semilla.
const (
	SeedManagerUsername = "manager"
	SeedCashierUsername = "cashier"
)

// DefaultAccounts lista las cuentas iniciales: un admin superusuario, un manager y un
// cashier. Se omiten las cuentas sin contraseña.
func DefaultAccounts(adminUsername, adminPassword, managerPassword, cashierPassword string) []dto.SeedUser {
	all := []dto.SeedUser{
		{Username: adminUsername, Password: adminPassword, FullName: "Administrator", Roles: []string{string(access.RoleAdmin)}, Superuser: true},
		{Username: SeedManagerUsername, Password: managerPassword, FullName: "Store Manager", Roles: []string{string(access.RoleManager)}},
		{Username: SeedCashierUsername, Password: cashierPassword, FullName: "Cashier", Roles: []string{string(access.RoleCashier)}},
	}
	out := make([]dto.SeedUser, 0, len(all))
	for _, u := range all {
		if u.Username != "" && u.Password != "" {
			out = append(out, u)
		}
	}
	return out
}

// SeedResult indica qué hizo EnsureAccounts con una cuenta.
type SeedResult struct {
	Username string
	Created  bool
}

// EnsureAccounts ejecuta EnsureUser para cada cuenta y corta en el primer error.
func (uc *AuthUseCase) EnsureAccounts(ctx context.Context, accounts []dto.SeedUser) ([]SeedResult, error) {
	out := make([]SeedResult, 0, len(accounts))
	for _, a := range accounts {
		u, created, err := uc.EnsureUser(ctx, a)
		if err != nil {
			return out, fmt.Errorf("seed %q: %w", a.Username, err)
		}
		out = append(out, SeedResult{Username: u.Username, Created: created})
	}
	return out, nil
}
