package employee

import (
	"time"

	"github.com/silcast/crane-admin/internal/core/datamodel/user"
)

type Employee struct {
	ID                int64      `gorm:"primaryKey"`
	NumeroEmpleado    string     `gorm:"column:numero_empleado;size:50;uniqueIndex;not null"`
	Nombre            string     `gorm:"column:nombre;not null"`
	ApellidoPaterno   string     `gorm:"column:apellido_paterno;not null"`
	ApellidoMaterno   *string    `gorm:"column:apellido_materno"`
	FechaNacimiento   time.Time  `gorm:"column:fecha_nacimiento;type:date;not null"`
	CorreoElectronico string     `gorm:"column:correo_electronico;size:255;uniqueIndex;not null"`
	Telefono          string     `gorm:"column:telefono;size:20;not null"`
	FechaIngreso      time.Time  `gorm:"column:fecha_ingreso;type:date;not null"`
	NSS               *string    `gorm:"column:nss;size:20"`
	RFC               *string    `gorm:"column:rfc;size:13"`
	CURP              *string    `gorm:"column:curp;size:18"`
	Calle             string     `gorm:"column:calle;not null"`
	Colonia           string     `gorm:"column:colonia;not null"`
	CP                string     `gorm:"column:cp;size:10;not null"`
	Municipio         string     `gorm:"column:municipio;not null"`
	Clabe             *string    `gorm:"column:clabe;size:18"`
	Banco             *string    `gorm:"column:banco"`
	Puesto            string     `gorm:"column:puesto;not null"`
	Area              string     `gorm:"column:area;not null"`
	Turno             string     `gorm:"column:turno;not null"`
	SDR               *string    `gorm:"column:sdr"`
	SDRIMSS           *string    `gorm:"column:sdr_imss"`
	Estado            string     `gorm:"column:estado;size:20;not null;default:activo"`
	FechaBaja         *time.Time `gorm:"column:fecha_baja;type:date"`
	Foto              *string    `gorm:"column:foto"`
	SupervisorID      *int64     `gorm:"column:supervisor_id;index"`
	EstadoCivil       *string    `gorm:"column:estado_civil"`
	Usuario           *user.User `gorm:"foreignKey:EmpleadoID;constraint:OnDelete:SET NULL"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "empleados"
}
