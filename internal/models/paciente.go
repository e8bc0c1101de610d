package models

import "time"

type Paciente struct {
	IDPaciente    int        `json:"idPaciente"`
	Nombre        string     `json:"nombre"`
	Apellido      string     `json:"apellido"`
	FechaNac      *string    `json:"fecha_nac"`
	Direccion     string     `json:"direccion"`
	Correo        string     `json:"correo"`
	FechaRegistro *time.Time `json:"fechaRegistro,omitempty"`
}

type CrearPacienteRequest struct {
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	FechaNac  *string `json:"fecha_nac"`
	Direccion string  `json:"direccion"`
	Correo    string  `json:"correo"`
}

// PacienteSIGCD is the shape SIGCD returns on GET /pacientes
type PacienteSIGCD struct {
	IDPaciente      int    `json:"id_paciente"`
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Email           string `json:"email"`
}

// SyncPacientesResult summarizes an upsert pass from SIGCD
type SyncPacientesResult struct {
	Mensaje        string `json:"mensaje"`
	TotalRecibidos int    `json:"total_recibidos"`
	Insertados     int    `json:"insertados"`
	Actualizados   int    `json:"actualizados"`
}
