package db

import (
	"log"
	"time"

	"github.com/MesaLibreServices/mesa-scheduler/internal/config"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Table{},
		&models.Reservation{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Second line of defense behind the allocator's row lock: the database
	// itself rejects two active reservations whose two-hour windows overlap
	// on the same table.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
            ) THEN
                ALTER TABLE reservations
                ADD CONSTRAINT reservations_no_overlap
                EXCLUDE USING gist (
                    table_id WITH =,
                    tsrange(fecha_hora, fecha_hora + interval '2 hours') WITH &&
                )
                WHERE (table_id IS NOT NULL AND estado <> 'CANCELLED');
            END IF;
        END
        $$
    `)

	return db
}
