// directory/postgres.go
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/wfunc/drawguess/models"
)

// PostgresDirectory is the plain database/sql backend, selected with
// database.driver = "pq". Same table as the GORM backend.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(host string, port int, user, password, dbname string) (*PostgresDirectory, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgresDirectory{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS rooms (
            id SERIAL PRIMARY KEY,
            room_code VARCHAR(64) UNIQUE NOT NULL,
            max_players INTEGER NOT NULL,
            total_game_time INTEGER NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_rooms_room_code ON rooms(room_code)`)
	return err
}

func (d *PostgresDirectory) Lookup(ctx context.Context, roomCode string) (models.RoomConfig, error) {
	var rec models.RoomConfig
	err := d.db.QueryRowContext(ctx,
		`SELECT max_players, total_game_time FROM rooms WHERE room_code = $1`,
		roomCode,
	).Scan(&rec.Capacity, &rec.TotalGameTimeMinutes)

	if errors.Is(err, sql.ErrNoRows) {
		return models.RoomConfig{}, ErrRoomNotFound
	}
	if err != nil {
		return models.RoomConfig{}, err
	}
	return rec, nil
}

func (d *PostgresDirectory) Create(ctx context.Context, roomCode string, capacity, totalGameTimeMinutes int) error {
	if err := Validate(capacity, totalGameTimeMinutes); err != nil {
		return err
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO rooms (room_code, max_players, total_game_time) VALUES ($1, $2, $3)`,
		roomCode, capacity, totalGameTimeMinutes,
	)
	return err
}

func (d *PostgresDirectory) Close() error {
	return d.db.Close()
}
