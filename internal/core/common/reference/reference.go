// Package reference answers "does row id exist in table" for foreign-key style validation.
package reference

import (
	"context"
	"fmt"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	"gorm.io/gorm"
)

// Tables that may be referenced from request payloads.
const (
	Employees   = "empleados"
	Users       = "usuarios"
	Cranes      = "gruas"
	Clients     = "clientes"
	Suppliers   = "proveedores"
	Inventories = "inventarios"
)

type Checker interface {
	Exists(ctx context.Context, table string, id int64) (bool, error)
}

type GormChecker struct {
	db *gorm.DB
}

func NewGormChecker(db *gorm.DB) *GormChecker {
	return &GormChecker{db: db}
}

func (c *GormChecker) Exists(ctx context.Context, table string, id int64) (bool, error) {
	if !known(table) {
		return false, fmt.Errorf("reference: unknown table %q", table)
	}
	var count int64
	err := c.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("reference: check %s(%d): %w", table, id, err)
	}
	return count > 0, nil
}

func known(table string) bool {
	switch table {
	case Employees, Users, Cranes, Clients, Suppliers, Inventories:
		return true
	}
	return false
}

// Require records a validation error on v when id is set but does not resolve in table.
func Require(ctx context.Context, c Checker, v *validation.ValidationBuilder, field, table string, id *int64) error {
	if id == nil || *id == 0 {
		return nil
	}
	ok, err := c.Exists(ctx, table, *id)
	if err != nil {
		return err
	}
	if !ok {
		v.AddError(field, fmt.Sprintf("the selected %s is invalid", field), internal.ErrCodeUnknownReference)
	}
	return nil
}
