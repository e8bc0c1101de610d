package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE ALL CLINIC DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all patients")
	fmt.Println("  - Delete all treatments")
	fmt.Println("  - Delete all quotes and line items")
	fmt.Println("  - Delete all payments")
	fmt.Println("  - Delete all cash reconciliations")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "clinica_caja")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting database...")

	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "SET session_replication_role = 'replica'")
	if err != nil {
		log.Fatalf("Failed to disable foreign key checks: %v\n", err)
	}

	tables := []string{
		"arqueo",
		"pago",
		"detalle_presupuesto",
		"presupuesto",
		"tratamiento",
		"paciente",
	}

	for _, table := range tables {
		_, err = tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  ✓ Cleared %s\n", table)
	}

	_, err = tx.Exec(ctx, "SET session_replication_role = 'origin'")
	if err != nil {
		log.Fatalf("Failed to enable foreign key checks: %v\n", err)
	}

	sequences := []string{
		"paciente_id_paciente_seq",
		"tratamiento_id_tratamiento_seq",
		"presupuesto_id_presupuesto_seq",
		"detalle_presupuesto_id_detalle_seq",
		"pago_id_pago_seq",
		"arqueo_id_arqueo_seq",
	}

	for _, seq := range sequences {
		_, err = tx.Exec(ctx, fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1", seq))
		if err != nil {
			log.Printf("Warning: Failed to reset sequence %s: %v\n", seq, err)
		}
	}
	fmt.Println("  ✓ Reset ID sequences")

	// Seed the treatment catalog so quoting works out of the box
	tratamientos := []struct {
		nombre string
		desc   string
		precio float64
	}{
		{"Consulta general", "Valoración inicial", 350.00},
		{"Limpieza dental", "Profilaxis completa", 600.00},
		{"Radiografía", "Placa panorámica", 450.00},
	}

	for _, t := range tratamientos {
		_, err = tx.Exec(ctx, `
			INSERT INTO tratamiento (nombre_tratamiento, descripcion, precio_base)
			VALUES ($1, $2, $3)`,
			t.nombre, t.desc, t.precio,
		)
		if err != nil {
			log.Printf("Warning: Failed to seed tratamiento %s: %v\n", t.nombre, err)
		}
	}
	fmt.Println("  ✓ Seeded treatment catalog")

	err = tx.Commit(ctx)
	if err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("✅ Database reset successful!")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
