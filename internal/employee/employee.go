package employee

import (
	"sort"
	"time"

	"github.com/silcast/crane-admin/internal/core/common/validation"
	employeeDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/employee"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
)

const EntityName = "employee"

const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
	EstadoBaja     = "baja"
)

// Account is the login linked to an employee, without its password.
type Account struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type Employee struct {
	ID                int64     `json:"id"`
	NumeroEmpleado    string    `json:"numero_empleado"`
	Nombre            string    `json:"nombre"`
	ApellidoPaterno   string    `json:"apellido_paterno"`
	ApellidoMaterno   *string   `json:"apellido_materno"`
	FechaNacimiento   string    `json:"fecha_nacimiento"`
	CorreoElectronico string    `json:"correo_electronico"`
	Telefono          string    `json:"telefono"`
	FechaIngreso      string    `json:"fecha_ingreso"`
	NSS               *string   `json:"nss"`
	RFC               *string   `json:"rfc"`
	CURP              *string   `json:"curp"`
	Calle             string    `json:"calle"`
	Colonia           string    `json:"colonia"`
	CP                string    `json:"cp"`
	Municipio         string    `json:"municipio"`
	Clabe             *string   `json:"clabe"`
	Banco             *string   `json:"banco"`
	Puesto            string    `json:"puesto"`
	Area              string    `json:"area"`
	Turno             string    `json:"turno"`
	SDR               *string   `json:"sdr"`
	SDRIMSS           *string   `json:"sdr_imss"`
	Estado            string    `json:"estado"`
	FechaBaja         *string   `json:"fecha_baja"`
	Foto              *string   `json:"foto"`
	SupervisorID      *int64    `json:"supervisor_id"`
	EstadoCivil       *string   `json:"estado_civil"`
	Usuario           *Account  `json:"usuario"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Summary is the shape embedded when another record points at an employee.
type Summary struct {
	ID              int64   `json:"id"`
	NumeroEmpleado  string  `json:"numero_empleado"`
	Nombre          string  `json:"nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
}

func SummaryFromDataModel(e *employeeDatamodel.Employee) *Summary {
	if e == nil {
		return nil
	}
	return &Summary{
		ID:              e.ID,
		NumeroEmpleado:  e.NumeroEmpleado,
		Nombre:          e.Nombre,
		ApellidoPaterno: e.ApellidoPaterno,
		ApellidoMaterno: e.ApellidoMaterno,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	out := &Employee{
		ID:                e.ID,
		NumeroEmpleado:    e.NumeroEmpleado,
		Nombre:            e.Nombre,
		ApellidoPaterno:   e.ApellidoPaterno,
		ApellidoMaterno:   e.ApellidoMaterno,
		FechaNacimiento:   validation.FormatDate(e.FechaNacimiento),
		CorreoElectronico: e.CorreoElectronico,
		Telefono:          e.Telefono,
		FechaIngreso:      validation.FormatDate(e.FechaIngreso),
		NSS:               e.NSS,
		RFC:               e.RFC,
		CURP:              e.CURP,
		Calle:             e.Calle,
		Colonia:           e.Colonia,
		CP:                e.CP,
		Municipio:         e.Municipio,
		Clabe:             e.Clabe,
		Banco:             e.Banco,
		Puesto:            e.Puesto,
		Area:              e.Area,
		Turno:             e.Turno,
		SDR:               e.SDR,
		SDRIMSS:           e.SDRIMSS,
		Estado:            e.Estado,
		FechaBaja:         validation.FormatDatePtr(e.FechaBaja),
		Foto:              e.Foto,
		SupervisorID:      e.SupervisorID,
		EstadoCivil:       e.EstadoCivil,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.Usuario != nil {
		out.Usuario = accountFromDataModel(e.Usuario)
	}
	return out
}

func accountFromDataModel(u *userDatamodel.User) *Account {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	sort.Strings(roles)
	return &Account{ID: u.ID, Email: u.Email, Roles: roles}
}
