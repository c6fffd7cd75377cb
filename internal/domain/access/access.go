// Package access define los roles y permisos tipados del control de acceso.
package access

import (
	"strings"

	"github.com/zeenatstore/zeenat-store/internal/domain"
)

// Role es un grupo del personal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// ParseRole convierte un nombre de grupo en Role, sin distinguir mayúsculas ni espacios.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleManager:
		return RoleManager, true
	case RoleCashier:
		return RoleCashier, true
	}
	return "", false
}

// ParseRoles conserva los roles reconocidos y descarta el resto.
func ParseRoles(names []string) []Role {
	out := make([]Role, 0, len(names))
	for _, n := range names {
		if r, ok := ParseRole(n); ok {
			out = append(out, r)
		}
	}
	return out
}

// Permission es una acción protegida por el control de acceso.
type Permission string

const (
	PermViewDashboard  Permission = "view_dashboard"
	PermManageProducts Permission = "manage_products"
	PermSell           Permission = "sell"
	PermViewSales      Permission = "view_sales"
	PermViewReports    Permission = "view_reports"
)

// Principal es el usuario autenticado tal como lo ve el control de acceso.
type Principal struct {
	UserID    string
	Username  string
	Roles     []Role
	Superuser bool
}

// HasRole indica si pertenece a r.
func (p Principal) HasRole(r Role) bool {
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Authorizer decide si un principal puede ejercer un permiso.
type Authorizer interface {
	Authorize(p Principal, perm Permission) error
}

// RolePolicy tabla estática rol → permisos. Los superusuarios la saltan.
type RolePolicy struct {
	grants map[Role]map[Permission]bool
}

// DefaultPolicy: managers y admins gestionan la tienda; cashiers solo venden.
func DefaultPolicy() *RolePolicy {
	return NewRolePolicy(map[Role][]Permission{
		RoleAdmin:   {PermViewDashboard, PermManageProducts, PermSell, PermViewSales, PermViewReports},
		RoleManager: {PermViewDashboard, PermManageProducts, PermSell, PermViewSales, PermViewReports},
		RoleCashier: {PermViewDashboard, PermSell, PermViewSales},
	})
}

// NewRolePolicy arma una política desde una tabla de permisos.
func NewRolePolicy(table map[Role][]Permission) *RolePolicy {
	grants := make(map[Role]map[Permission]bool, len(table))
	for role, perms := range table {
		set := make(map[Permission]bool, len(perms))
		for _, p := range perms {
			set[p] = true
		}
		grants[role] = set
	}
	return &RolePolicy{grants: grants}
}

// Authorize devuelve domain.ErrUnauthorized para un principal anónimo y
// domain.ErrForbidden si ninguno de sus roles concede perm.
func (rp *RolePolicy) Authorize(p Principal, perm Permission) error {
	if p.UserID == "" {
		return domain.ErrUnauthorized
	}
	if p.Superuser {
		return nil
	}
	for _, r := range p.Roles {
		if rp.grants[r][perm] {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Can es Authorize como booleano, para las plantillas.
func (rp *RolePolicy) Can(p Principal, perm Permission) bool {
	return rp.Authorize(p, perm) == nil
}
