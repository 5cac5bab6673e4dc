package employee

import (
	"strings"
	"time"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	employeeDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/employee"
)

// EmployeeDTO is the create/update payload. Email, Password and Roles manage
// the linked login and are all optional.
type EmployeeDTO struct {
	NumeroEmpleado    string  `json:"numero_empleado"`
	Nombre            string  `json:"nombre"`
	ApellidoPaterno   string  `json:"apellido_paterno"`
	ApellidoMaterno   *string `json:"apellido_materno"`
	FechaNacimiento   string  `json:"fecha_nacimiento"`
	CorreoElectronico string  `json:"correo_electronico"`
	Telefono          string  `json:"telefono"`
	FechaIngreso      string  `json:"fecha_ingreso"`
	NSS               *string `json:"nss"`
	RFC               *string `json:"rfc"`
	CURP              *string `json:"curp"`
	Calle             string  `json:"calle"`
	Colonia           string  `json:"colonia"`
	CP                string  `json:"cp"`
	Municipio         string  `json:"municipio"`
	Clabe             *string `json:"clabe"`
	Banco             *string `json:"banco"`
	Puesto            string  `json:"puesto"`
	Area              string  `json:"area"`
	Turno             string  `json:"turno"`
	SDR               *string `json:"sdr"`
	SDRIMSS           *string `json:"sdr_imss"`
	Estado            string  `json:"estado"`
	FechaBaja         *string `json:"fecha_baja"`
	Foto              *string `json:"foto"`
	SupervisorID      *int64  `json:"supervisor_id"`
	EstadoCivil       *string `json:"estado_civil"`

	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
}

func (d *EmployeeDTO) Normalize() {
	for _, s := range []*string{
		&d.NumeroEmpleado, &d.Nombre, &d.ApellidoPaterno, &d.FechaNacimiento,
		&d.CorreoElectronico, &d.Telefono, &d.FechaIngreso, &d.Calle, &d.Colonia,
		&d.CP, &d.Municipio, &d.Puesto, &d.Area, &d.Turno, &d.Estado,
	} {
		*s = strings.TrimSpace(*s)
	}
	for _, p := range []**string{
		&d.ApellidoMaterno, &d.NSS, &d.RFC, &d.CURP, &d.Clabe, &d.Banco,
		&d.SDR, &d.SDRIMSS, &d.FechaBaja, &d.Foto, &d.EstadoCivil, &d.Email,
	} {
		*p = validation.TrimOptional(*p)
	}
	if d.Password != nil && *d.Password == "" {
		d.Password = nil
	}
	if d.SupervisorID != nil && *d.SupervisorID == 0 {
		d.SupervisorID = nil
	}
	if d.Estado == "" {
		d.Estado = EstadoActivo
	}
}

// ManagesAccount reports whether the payload touches the linked login.
func (d EmployeeDTO) ManagesAccount() bool {
	return d.Email != nil || d.Password != nil || d.Roles != nil
}

// Rules adds the field rules. selfID is the employee being updated, 0 on create;
// hasAccount tells whether that employee already has a login.
func (d EmployeeDTO) Rules(v *validation.ValidationBuilder, selfID int64, hasAccount bool) {
	v.Field("numero_empleado", d.NumeroEmpleado).Required().MaxLength(255)
	v.Field("nombre", d.Nombre).Required().MaxLength(255)
	v.Field("apellido_paterno", d.ApellidoPaterno).Required().MaxLength(255)
	v.Field("apellido_materno", d.ApellidoMaterno).MaxLength(255)
	v.Field("fecha_nacimiento", d.FechaNacimiento).Required().Date()
	v.Field("correo_electronico", d.CorreoElectronico).Required().Email().MaxLength(255)
	v.Field("telefono", d.Telefono).Required().MaxLength(20)
	v.Field("fecha_ingreso", d.FechaIngreso).Required().Date()
	v.Field("nss", d.NSS).MaxLength(20)
	v.Field("rfc", d.RFC).MaxLength(13)
	v.Field("curp", d.CURP).MaxLength(18)
	v.Field("calle", d.Calle).Required().MaxLength(255)
	v.Field("colonia", d.Colonia).Required().MaxLength(255)
	v.Field("cp", d.CP).Required().MaxLength(10)
	v.Field("municipio", d.Municipio).Required().MaxLength(255)
	v.Field("clabe", d.Clabe).MaxLength(18)
	v.Field("banco", d.Banco).MaxLength(255)
	v.Field("puesto", d.Puesto).Required().MaxLength(255)
	v.Field("area", d.Area).Required().MaxLength(255)
	v.Field("turno", d.Turno).Required().MaxLength(255)
	v.Field("sdr", d.SDR).MaxLength(255)
	v.Field("sdr_imss", d.SDRIMSS).MaxLength(255)
	v.Field("estado", d.Estado).Required().OneOf(EstadoActivo, EstadoInactivo, EstadoBaja)
	v.Field("fecha_baja", d.FechaBaja).Date().Custom(d.notBeforeIngreso)
	v.Field("foto", d.Foto).MaxLength(255)
	v.Field("estado_civil", d.EstadoCivil).MaxLength(255)

	if selfID != 0 && d.SupervisorID != nil && *d.SupervisorID == selfID {
		v.AddError("supervisor_id", "an employee cannot be their own supervisor", internal.ErrCodeNotAllowed)
	}

	v.Field("email", d.Email).Email().MaxLength(255)
	v.Field("password", d.Password).MinLength(8)
	if d.Email == nil && (d.Password != nil || d.Roles != nil) {
		v.AddError("email", "email is required when password or roles are present", internal.ErrCodeRequired)
	}
	if d.Email != nil && d.Password == nil && !hasAccount {
		v.AddError("password", "password is required to create the employee login", internal.ErrCodeRequired)
	}
}

func (d EmployeeDTO) notBeforeIngreso(value interface{}) *internal.AppError {
	if d.FechaBaja == nil {
		return nil
	}
	baja, err := validation.ParseDate(*d.FechaBaja, time.UTC)
	if err != nil {
		return nil
	}
	ingreso, err := validation.ParseDate(d.FechaIngreso, time.UTC)
	if err != nil {
		return nil
	}
	if baja.Before(ingreso) {
		return internal.NewValidationFieldError("fecha_baja",
			"fecha_baja must be a date after or equal to fecha_ingreso", internal.ErrCodeInvalidDate)
	}
	return nil
}

// apply copies the validated payload onto row. Dates were checked by Rules.
func (d EmployeeDTO) apply(row *employeeDatamodel.Employee) {
	nacimiento, _ := validation.ParseDate(d.FechaNacimiento, time.UTC)
	ingreso, _ := validation.ParseDate(d.FechaIngreso, time.UTC)
	baja, _ := validation.ParseDatePtr(d.FechaBaja, time.UTC)

	row.NumeroEmpleado = d.NumeroEmpleado
	row.Nombre = d.Nombre
	row.ApellidoPaterno = d.ApellidoPaterno
	row.ApellidoMaterno = d.ApellidoMaterno
	row.FechaNacimiento = nacimiento
	row.CorreoElectronico = d.CorreoElectronico
	row.Telefono = d.Telefono
	row.FechaIngreso = ingreso
	row.NSS = d.NSS
	row.RFC = d.RFC
	row.CURP = d.CURP
	row.Calle = d.Calle
	row.Colonia = d.Colonia
	row.CP = d.CP
	row.Municipio = d.Municipio
	row.Clabe = d.Clabe
	row.Banco = d.Banco
	row.Puesto = d.Puesto
	row.Area = d.Area
	row.Turno = d.Turno
	row.SDR = d.SDR
	row.SDRIMSS = d.SDRIMSS
	row.Estado = d.Estado
	row.FechaBaja = baja
	row.Foto = d.Foto
	row.SupervisorID = d.SupervisorID
	row.EstadoCivil = d.EstadoCivil
}
