package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const assetColumns = "id, user_id, name, category, value, income_generated, notes, created_at"

// AssetRepository persists assets. Every call is scoped to one user.
type AssetRepository struct {
	store
}

// List returns every asset owned by userID, newest first.
func (r *AssetRepository) List(ctx context.Context, userID string) ([]models.Asset, error) {
	rows, err := r.query(ctx, "SELECT "+assetColumns+" FROM assets WHERE user_id = ? ORDER BY created_at DESC, id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

// Get returns the asset id if userID owns it.
func (r *AssetRepository) Get(ctx context.Context, userID, id string) (*models.Asset, error) {
	row := r.queryRow(ctx, "SELECT "+assetColumns+" FROM assets WHERE id = ? AND user_id = ?", id, userID)
	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// Create inserts a new asset owned by userID.
func (r *AssetRepository) Create(ctx context.Context, userID string, in models.AssetInput) (*models.Asset, error) {
	asset := &models.Asset{
		ID:              newID(),
		UserID:          userID,
		Name:            in.Name,
		Category:        in.Category,
		Value:           floatOr(in.Value, 0),
		IncomeGenerated: floatOr(in.IncomeGenerated, 0),
		Notes:           stringValue(nullableText(in.Notes)),
		CreatedAt:       now(),
	}
	_, err := r.exec(ctx, `
		INSERT INTO assets (id, user_id, name, category, value, income_generated, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		asset.ID, userID, asset.Name, asset.Category, decimalText(asset.Value),
		decimalText(asset.IncomeGenerated), nullableText(asset.Notes), asset.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

// Update applies the non-nil fields of p to the asset id owned by userID.
func (r *AssetRepository) Update(ctx context.Context, userID, id string, p models.AssetPatch) (*models.Asset, error) {
	set := &updateSet{}
	set.setString("name", p.Name)
	set.setString("category", p.Category)
	set.setDecimal("value", p.Value)
	set.setDecimal("income_generated", p.IncomeGenerated)
	set.setNotes("notes", p.Notes)
	if err := r.updateOwned(ctx, "assets", id, userID, set); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

// Delete removes the asset id owned by userID.
func (r *AssetRepository) Delete(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "assets", id, userID)
}

func scanAsset(row interface{ Scan(...any) error }) (*models.Asset, error) {
	var (
		a                      models.Asset
		value, incomeGenerated decimal.Decimal
		notes                  sql.NullString
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Category, &value, &incomeGenerated, &notes, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Value = decimalFloat(value)
	a.IncomeGenerated = decimalFloat(incomeGenerated)
	a.Notes = stringValue(notes)
	return &a, nil
}
