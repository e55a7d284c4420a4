package prediction

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Insert a prediction record
// --------------------------------------------------
func (r *PostgresRepository) Insert(ctx context.Context, record *Record) (string, error) {
	featuresJSON, err := json.Marshal(record.InputFeatures)
	if err != nil {
		return "", err
	}

	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO predictions (
			id,
			prediction_type,
			predicted_value,
			predicted_class,
			confidence_score,
			model_version,
			input_features,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Exec(
		ctx,
		query,
		record.ID,
		record.PredictionType,
		record.PredictedValue,
		nullableClass(record.PredictedClass),
		record.ConfidenceScore,
		record.ModelVersion,
		featuresJSON,
		record.CreatedAt,
	)
	if err != nil {
		record.ID = ""
		return "", err
	}

	return record.ID, nil
}

// --------------------------------------------------
// List recent predictions, newest first
// --------------------------------------------------
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	query := `
		SELECT
			id,
			prediction_type,
			predicted_value,
			predicted_class,
			confidence_score,
			model_version,
			input_features,
			created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record

	for rows.Next() {
		var rec Record
		var class *string
		var featuresJSON []byte

		if err := rows.Scan(
			&rec.ID,
			&rec.PredictionType,
			&rec.PredictedValue,
			&class,
			&rec.ConfidenceScore,
			&rec.ModelVersion,
			&featuresJSON,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		if class != nil {
			rec.PredictedClass = *class
		}
		if len(featuresJSON) > 0 {
			if err := json.Unmarshal(featuresJSON, &rec.InputFeatures); err != nil {
				return nil, err
			}
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

func nullableClass(class string) *string {
	if class == "" {
		return nil
	}
	return &class
}
