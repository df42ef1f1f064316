package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecowatch/pollution-api/internal/model"
)

var ErrPollutionNotFound = errors.New("pollution not found")

const pollutionColumns = "id, nom, lieu, date_observation, type_pollution, description, latitude, longitude, image_url"

// PollutionRepository handles pollution report persistence operations.
type PollutionRepository struct {
	db *sql.DB
}

// NewPollutionRepository creates a new PollutionRepository.
func NewPollutionRepository(db *sql.DB) *PollutionRepository {
	return &PollutionRepository{db: db}
}

// Create inserts a new pollution report and sets the generated ID on the struct.
func (r *PollutionRepository) Create(ctx context.Context, p *model.Pollution) error {
	query := `INSERT INTO pollutions (nom, lieu, date_observation, type_pollution, description, latitude, longitude, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.Nom, p.Lieu, p.DateObservation, p.TypePollution, p.Description,
		decimalArg(p.Latitude), decimalArg(p.Longitude), p.ImageURL,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// GetByID retrieves a pollution report by its ID.
func (r *PollutionRepository) GetByID(ctx context.Context, id int64) (*model.Pollution, error) {
	query := `SELECT ` + pollutionColumns + ` FROM pollutions WHERE id = ?`

	p := &model.Pollution{}
	var lat, lng *string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Nom, &p.Lieu, &p.DateObservation, &p.TypePollution,
		&p.Description, &lat, &lng, &p.ImageURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPollutionNotFound
		}
		return nil, err
	}

	p.Latitude = toDecimal(lat)
	p.Longitude = toDecimal(lng)
	return p, nil
}

// List retrieves all pollution reports, optionally filtered by a
// case-insensitive substring match on the title, in store-native order.
func (r *PollutionRepository) List(ctx context.Context, nom string) ([]model.Pollution, error) {
	query := `SELECT ` + pollutionColumns + ` FROM pollutions`
	var args []any
	if nom != "" {
		query += ` WHERE LOWER(nom) LIKE LOWER(?)`
		args = append(args, "%"+nom+"%")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Pollution
	for rows.Next() {
		var p model.Pollution
		var lat, lng *string
		if err := rows.Scan(
			&p.ID, &p.Nom, &p.Lieu, &p.DateObservation, &p.TypePollution,
			&p.Description, &lat, &lng, &p.ImageURL,
		); err != nil {
			return nil, err
		}
		p.Latitude = toDecimal(lat)
		p.Longitude = toDecimal(lng)
		reports = append(reports, p)
	}

	return reports, rows.Err()
}

// Update applies a partial update with only the supplied fields and returns
// the affected-row count.
func (r *PollutionRepository) Update(ctx context.Context, id int64, req model.PollutionRequest) (int64, error) {
	var sets []string
	var args []any
	if req.Nom != nil {
		sets = append(sets, "nom = ?")
		args = append(args, *req.Nom)
	}
	if req.Lieu != nil {
		sets = append(sets, "lieu = ?")
		args = append(args, *req.Lieu)
	}
	if req.DateObservation != nil {
		sets = append(sets, "date_observation = ?")
		args = append(args, *req.DateObservation)
	}
	if req.TypePollution != nil {
		sets = append(sets, "type_pollution = ?")
		args = append(args, *req.TypePollution)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Latitude != nil {
		sets = append(sets, "latitude = ?")
		args = append(args, string(*req.Latitude))
	}
	if req.Longitude != nil {
		sets = append(sets, "longitude = ?")
		args = append(args, string(*req.Longitude))
	}
	if req.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *req.ImageURL)
	}

	if len(sets) == 0 {
		return 0, nil
	}

	query := `UPDATE pollutions SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// Delete removes a pollution report by ID and returns the affected-row count.
func (r *PollutionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pollutions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// DeleteAll removes every pollution report and returns how many were removed.
func (r *PollutionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pollutions`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func decimalArg(d *model.Decimal) any {
	if d == nil {
		return nil
	}
	return string(*d)
}

func toDecimal(s *string) *model.Decimal {
	if s == nil {
		return nil
	}
	d := model.Decimal(*s)
	return &d
}
