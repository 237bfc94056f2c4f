// Package tables tracks dine-in table availability.
package tables

import (
	"context"
	"errors"
	"fmt"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Directory struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// List returns tables ordered by number; seats > 0 filters by exact seat count.
func (d *Directory) List(ctx context.Context, seats int) ([]models.Table, error) {
	query := d.db.WithContext(ctx).Order("number")
	if seats > 0 {
		query = query.Where("seats = ?", seats)
	}
	var out []models.Table
	if err := query.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return out, nil
}

func (d *Directory) GetTable(ctx context.Context, number int) (models.Table, error) {
	return Get(d.db.WithContext(ctx), number)
}

// Get loads a table using db, which may be a transaction.
func Get(db *gorm.DB, number int) (models.Table, error) {
	var t models.Table
	err := db.First(&t, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Table{}, apperr.ErrTableNotFound
	}
	if err != nil {
		return models.Table{}, fmt.Errorf("get table %d: %w", number, err)
	}
	return t, nil
}

// Occupy claims an available table inside tx. Any other status is a SelectionError.
func Occupy(tx *gorm.DB, number int) (models.Table, error) {
	res := tx.Model(&models.Table{}).
		Where("number = ? AND status = ?", number, models.TableAvailable).
		Update("status", models.TableOccupied)
	if res.Error != nil {
		return models.Table{}, fmt.Errorf("occupy table %d: %w", number, res.Error)
	}
	if res.RowsAffected == 0 {
		t, err := Get(tx, number)
		if err != nil {
			return models.Table{}, err
		}
		return models.Table{}, &apperr.SelectionError{TableNumber: t.Number, Status: string(t.Status)}
	}
	return Get(tx, number)
}

// Release marks a table available again.
func Release(tx *gorm.DB, number int) error {
	err := tx.Model(&models.Table{}).
		Where("number = ?", number).
		Updates(map[string]any{"status": models.TableAvailable, "available_at": ""}).Error
	if err != nil {
		return fmt.Errorf("release table %d: %w", number, err)
	}
	return nil
}

// Floor is the café layout loaded at startup.
var Floor = []models.Table{
	{Number: 1, Seats: 2, Status: models.TableAvailable},
	{Number: 2, Seats: 2, Status: models.TableOccupied},
	{Number: 3, Seats: 4, Status: models.TableAvailable},
	{Number: 4, Seats: 4, Status: models.TableReserved, AvailableAt: "2:30 PM"},
	{Number: 5, Seats: 6, Status: models.TableAvailable},
	{Number: 6, Seats: 2, Status: models.TableAvailable},
	{Number: 7, Seats: 4, Status: models.TableAvailable},
	{Number: 8, Seats: 2, Status: models.TableOccupied},
}

// Seed inserts the floor layout, leaving existing rows untouched.
func (d *Directory) Seed(ctx context.Context, floor []models.Table) error {
	rows := make([]models.Table, len(floor))
	copy(rows, floor)
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	return nil
}
