// directory/gorm.go
package directory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/drawguess/models"
)

// RoomModel is the rooms table.
type RoomModel struct {
	ID            uint   `gorm:"primaryKey"`
	RoomCode      string `gorm:"uniqueIndex;not null"`
	MaxPlayers    int    `gorm:"not null"`
	TotalGameTime int    `gorm:"not null"` // minutes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (RoomModel) TableName() string { return "rooms" }

// GormDirectory is the GORM-backed room directory, the default backend.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(host string, port int, user, password, dbname string) (*GormDirectory, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&RoomModel{}); err != nil {
		return nil, err
	}

	return &GormDirectory{db: db}, nil
}

func (d *GormDirectory) Lookup(ctx context.Context, roomCode string) (models.RoomConfig, error) {
	var room RoomModel
	err := d.db.WithContext(ctx).Where("room_code = ?", roomCode).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoomConfig{}, ErrRoomNotFound
	}
	if err != nil {
		return models.RoomConfig{}, err
	}
	return models.RoomConfig{Capacity: room.MaxPlayers, TotalGameTimeMinutes: room.TotalGameTime}, nil
}

func (d *GormDirectory) Create(ctx context.Context, roomCode string, capacity, totalGameTimeMinutes int) error {
	if err := Validate(capacity, totalGameTimeMinutes); err != nil {
		return err
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room := RoomModel{
			RoomCode:      roomCode,
			MaxPlayers:    capacity,
			TotalGameTime: totalGameTimeMinutes,
		}
		return tx.Create(&room).Error
	})
}

func (d *GormDirectory) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
