package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/silcast/crane-admin/internal/lookup"
)

const (
	employeeOptionsQuery = `
SELECT id, nombre, apellido_paterno
FROM empleados
ORDER BY nombre, apellido_paterno`

	craneOptionsQuery = `
SELECT id, unidad || ' - ' || tipo AS display_name
FROM gruas
ORDER BY unidad`
)

type LookupRepository struct {
	db *sqlx.DB
}

func NewLookupRepository(db *sqlx.DB) lookup.RepositoryAPI {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) Employees(ctx context.Context) ([]lookup.EmployeeOption, error) {
	var options []lookup.EmployeeOption
	if err := r.db.SelectContext(ctx, &options, employeeOptionsQuery); err != nil {
		return nil, fmt.Errorf("employee options query: %w", err)
	}
	return options, nil
}

func (r *LookupRepository) Cranes(ctx context.Context) ([]lookup.CraneOption, error) {
	var options []lookup.CraneOption
	if err := r.db.SelectContext(ctx, &options, craneOptionsQuery); err != nil {
		return nil, fmt.Errorf("crane options query: %w", err)
	}
	return options, nil
}
