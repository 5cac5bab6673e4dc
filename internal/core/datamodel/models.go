// Package datamodel lists every persisted model, in dependency order.
package datamodel

import (
	"github.com/silcast/crane-admin/internal/core/datamodel/access"
	"github.com/silcast/crane-admin/internal/core/datamodel/client"
	"github.com/silcast/crane-admin/internal/core/datamodel/crane"
	"github.com/silcast/crane-admin/internal/core/datamodel/employee"
	"github.com/silcast/crane-admin/internal/core/datamodel/inventory"
	"github.com/silcast/crane-admin/internal/core/datamodel/movement"
	"github.com/silcast/crane-admin/internal/core/datamodel/servicereport"
	"github.com/silcast/crane-admin/internal/core/datamodel/supplier"
	"github.com/silcast/crane-admin/internal/core/datamodel/user"
)

// All is used by tests to AutoMigrate an in-memory database; production
// schemas come from the goose migrations.
func All() []interface{} {
	return []interface{}{
		&user.Permission{},
		&user.Role{},
		&employee.Employee{},
		&user.User{},
		&user.AccessToken{},
		&client.Client{},
		&supplier.Supplier{},
		&crane.Crane{},
		&movement.Movement{},
		&inventory.Item{},
		&inventory.Entry{},
		&inventory.Exit{},
		&servicereport.Report{},
		&access.Access{},
	}
}
