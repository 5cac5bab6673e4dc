package auth

import (
	"sort"

	"github.com/silcast/crane-admin/internal"
)

const (
	PermViewSuppliers   = "view suppliers"
	PermCreateSuppliers = "create suppliers"
	PermEditSuppliers   = "edit suppliers"
	PermDeleteSuppliers = "delete suppliers"

	PermViewEmployees   = "view employees"
	PermCreateEmployees = "create employees"
	PermEditEmployees   = "edit employees"
	PermDeleteEmployees = "delete employees"

	PermViewMovements   = "view movements"
	PermCreateMovements = "create movements"
	PermEditMovements   = "edit movements"
	PermDeleteMovements = "delete movements"

	PermViewGruas   = "view gruas"
	PermCreateGruas = "create gruas"
	PermEditGruas   = "edit gruas"
	PermDeleteGruas = "delete gruas"

	PermViewEntradaSalidaGruas   = "view entrada-salida-gruas"
	PermCreateEntradaSalidaGruas = "create entrada-salida-gruas"
	PermEditEntradaSalidaGruas   = "edit entrada-salida-gruas"
	PermDeleteEntradaSalidaGruas = "delete entrada-salida-gruas"

	PermViewUsers   = "view users"
	PermCreateUsers = "create users"
	PermEditUsers   = "edit users"
	PermDeleteUsers = "delete users"

	PermViewClients   = "view clients"
	PermCreateClients = "create clients"
	PermEditClients   = "edit clients"
	PermDeleteClients = "delete clients"

	PermViewInventory   = "view inventory"
	PermCreateInventory = "create inventory"
	PermEditInventory   = "edit inventory"
	PermDeleteInventory = "delete inventory"

	PermViewServiceReports   = "view service reports"
	PermCreateServiceReports = "create service reports"
	PermEditServiceReports   = "edit service reports"
	PermDeleteServiceReports = "delete service reports"

	PermViewAccesses   = "view accesses"
	PermCreateAccesses = "create accesses"
	PermEditAccesses   = "edit accesses"
	PermDeleteAccesses = "delete accesses"

	PermManageUsers        = "manage users"
	PermAccessAdminPanel   = "access admin panel"
	PermAccessGruasSection = "access gruas section"
)

const (
	RoleSuperAdmin            = "super-admin"
	RoleAdmin                 = "admin"
	RoleGuardia               = "guardia"
	RoleAlmacenista           = "almacenista"
	RoleGruas                 = "gruas"
	RoleSegurista             = "segurista"
	RoleServiciosIndustriales = "servicios-industriales"
	RoleBasicUser             = "basic user"
)

// Role is a named permission set as loaded from the store.
type Role struct {
	Name        string
	Permissions []string
}

// Catalog returns every permission known to the system, in seeding order.
func Catalog() []string {
	return []string{
		PermViewSuppliers, PermCreateSuppliers, PermEditSuppliers, PermDeleteSuppliers,
		PermViewEmployees, PermCreateEmployees, PermEditEmployees, PermDeleteEmployees,
		PermViewMovements, PermCreateMovements, PermEditMovements, PermDeleteMovements,
		PermViewGruas, PermCreateGruas, PermEditGruas, PermDeleteGruas,
		PermViewEntradaSalidaGruas, PermCreateEntradaSalidaGruas, PermEditEntradaSalidaGruas, PermDeleteEntradaSalidaGruas,
		PermViewUsers, PermCreateUsers, PermEditUsers, PermDeleteUsers,
		PermViewClients, PermCreateClients, PermEditClients, PermDeleteClients,
		PermViewInventory, PermCreateInventory, PermEditInventory, PermDeleteInventory,
		PermViewServiceReports, PermCreateServiceReports, PermEditServiceReports, PermDeleteServiceReports,
		PermViewAccesses, PermCreateAccesses, PermEditAccesses, PermDeleteAccesses,
		PermManageUsers, PermAccessAdminPanel, PermAccessGruasSection,
	}
}

// RoleNames returns the seeded roles in a stable order.
func RoleNames() []string {
	return []string{
		RoleSuperAdmin, RoleAdmin, RoleGuardia, RoleAlmacenista,
		RoleGruas, RoleSegurista, RoleServiciosIndustriales, RoleBasicUser,
	}
}

// RoleGrants maps every seeded role to the permissions it is granted.
// super-admin is granted the whole catalog explicitly.
func RoleGrants() map[string][]string {
	return map[string][]string{
		RoleSuperAdmin: Catalog(),
		RoleAdmin: {
			PermViewSuppliers, PermCreateSuppliers, PermEditSuppliers, PermDeleteSuppliers,
			PermViewEmployees, PermCreateEmployees, PermEditEmployees, PermDeleteEmployees,
			PermViewMovements, PermCreateMovements, PermEditMovements, PermDeleteMovements,
			PermViewGruas, PermCreateGruas, PermEditGruas, PermDeleteGruas,
			PermViewUsers, PermCreateUsers, PermEditUsers, PermDeleteUsers,
			PermViewClients, PermCreateClients, PermEditClients, PermDeleteClients,
			PermViewServiceReports, PermCreateServiceReports, PermEditServiceReports, PermDeleteServiceReports,
			PermManageUsers, PermAccessAdminPanel, PermViewEntradaSalidaGruas,
		},
		RoleGuardia: {
			PermViewEntradaSalidaGruas, PermCreateEntradaSalidaGruas,
			PermViewAccesses, PermCreateAccesses,
			PermAccessAdminPanel,
		},
		RoleAlmacenista: {
			PermViewSuppliers, PermCreateSuppliers, PermEditSuppliers,
			PermViewInventory, PermCreateInventory, PermEditInventory,
			PermViewEmployees, PermViewMovements, PermViewGruas,
			PermAccessAdminPanel,
		},
		RoleGruas: {
			PermViewMovements, PermCreateMovements,
			PermViewGruas, PermCreateGruas,
			PermViewServiceReports, PermCreateServiceReports,
			PermAccessGruasSection, PermAccessAdminPanel,
		},
		RoleSegurista: {
			PermViewSuppliers, PermViewEmployees, PermViewMovements, PermViewGruas,
			PermViewEntradaSalidaGruas, PermViewAccesses,
			PermAccessAdminPanel,
		},
		RoleServiciosIndustriales: {PermAccessAdminPanel},
		RoleBasicUser:             {},
	}
}

// EffectivePermissions returns the sorted union of the permissions of roles.
func EffectivePermissions(roles []Role) []string {
	seen := make(map[string]struct{})
	perms := make([]string, 0)
	for _, role := range roles {
		for _, p := range role.Permissions {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			perms = append(perms, p)
		}
	}
	sort.Strings(perms)
	return perms
}

// Can reports whether user holds permission. A nil user holds nothing.
func Can(user *internal.CurrentUser, permission string) bool {
	if user == nil {
		return false
	}
	for _, p := range user.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func roleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}
