package repositories

import (
	"context"

	"clinica-caja/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SaldoRepository struct {
	DB *pgxpool.Pool
}

func NewSaldoRepository(db *pgxpool.Pool) *SaldoRepository {
	return &SaldoRepository{DB: db}
}

// TotalTratamientos sums every quoted line for the patient across all
// their quotes. Unknown patients sum to zero.
func (r *SaldoRepository) TotalTratamientos(ctx context.Context, idPaciente int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(d.precio_total), 0)
		FROM detalle_presupuesto d
		JOIN presupuesto p ON p.id_presupuesto = d.id_presupuesto
		WHERE p.id_paciente = $1
	`

	var total float64
	err := r.DB.QueryRow(ctx, query, idPaciente).Scan(&total)
	return total, err
}

func (r *SaldoRepository) TotalPagado(ctx context.Context, idPaciente int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(monto), 0)
		FROM pago
		WHERE id_paciente = $1
	`

	var total float64
	err := r.DB.QueryRow(ctx, query, idPaciente).Scan(&total)
	return total, err
}

// TratamientosPendientes lists the quoted lines backing the balance so
// the front desk can tell the patient what the debt is for.
func (r *SaldoRepository) TratamientosPendientes(ctx context.Context, idPaciente int) ([]models.TratamientoPendiente, error) {
	query := `
		SELECT d.id_presupuesto, d.id_tratamiento, t.nombre_tratamiento,
		       d.cantidad, d.precio_unitario, d.precio_total
		FROM detalle_presupuesto d
		JOIN presupuesto p ON p.id_presupuesto = d.id_presupuesto
		JOIN tratamiento t ON t.id_tratamiento = d.id_tratamiento
		WHERE p.id_paciente = $1
		ORDER BY d.id_presupuesto DESC
	`

	rows, err := r.DB.Query(ctx, query, idPaciente)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pendientes []models.TratamientoPendiente
	for rows.Next() {
		var tp models.TratamientoPendiente
		err := rows.Scan(
			&tp.IDPresupuesto,
			&tp.IDTratamiento,
			&tp.NombreTratamiento,
			&tp.Cantidad,
			&tp.PrecioUnitario,
			&tp.PrecioTotal,
		)
		if err != nil {
			return nil, err
		}
		pendientes = append(pendientes, tp)
	}

	return pendientes, rows.Err()
}
