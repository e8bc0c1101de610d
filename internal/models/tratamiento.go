package models

type Tratamiento struct {
	IDTratamiento     int     `json:"idTratamiento"`
	NombreTratamiento string  `json:"nombreTratamiento"`
	Descripcion       string  `json:"descripcion"`
	PrecioBase        float64 `json:"precioBase"`
}

type CrearTratamientoRequest struct {
	NombreTratamiento string  `json:"nombreTratamiento"`
	Descripcion       string  `json:"descripcion"`
	PrecioBase        float64 `json:"precioBase"`
}

// TratamientoSIGCD is one treatment as pushed by SIGCD on the sync endpoint
type TratamientoSIGCD struct {
	IDTratamiento int     `json:"id_tratamiento"`
	CveTrat       string  `json:"cve_trat"`
	Nombre        string  `json:"nombre"`
	Descripcion   string  `json:"descripcion"`
	PrecioBase    float64 `json:"precio_base"`
	DuracionMin   int     `json:"duracion_min"`
	Activo        int     `json:"activo"`
}

type SyncTratamientosRequest struct {
	Tratamientos []TratamientoSIGCD `json:"tratamientos"`
}

type SyncTratamientosResult struct {
	Mensaje        string `json:"mensaje"`
	TotalRecibidos int    `json:"total_recibidos"`
	Insertados     int    `json:"insertados"`
	Actualizados   int    `json:"actualizados"`
}
