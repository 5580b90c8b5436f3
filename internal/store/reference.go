package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/natya/internal/pose"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Reference represents an ingested reference sequence's metadata.
type Reference struct {
	ID        string
	Name      string
	Rate      int
	Frames    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReferenceRepository provides CRUD operations for reference sequences.
type ReferenceRepository struct {
	db *sql.DB
}

// References returns the reference repository for this store.
func (s *Store) References() *ReferenceRepository {
	return &ReferenceRepository{db: s.db}
}

// Create inserts a reference and all its frames in a single transaction.
// Frames are expected to be already normalized (one bounding box per
// sequence) by the ingest path.
func (r *ReferenceRepository) Create(ref *Reference, frames []pose.Frame) error {
	now := time.Now()
	ref.CreatedAt = now
	ref.UpdatedAt = now
	ref.Frames = len(frames)

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO references_seq (id, name, rate, frames, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ref.ID, ref.Name, ref.Rate, ref.Frames, ref.CreatedAt, ref.UpdatedAt,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO reference_landmarks (reference_id, frame_index, landmark_index, x, y, z, visibility)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for frameIndex, frame := range frames {
		for landmarkIndex, l := range frame {
			if _, err := stmt.Exec(ref.ID, frameIndex, landmarkIndex, l.X, l.Y, l.Z, l.Visibility); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetByID retrieves a reference's metadata by its ID.
func (r *ReferenceRepository) GetByID(id string) (*Reference, error) {
	ref := &Reference{}

	err := r.db.QueryRow(
		`SELECT id, name, rate, frames, created_at, updated_at
		 FROM references_seq WHERE id = ?`,
		id,
	).Scan(&ref.ID, &ref.Name, &ref.Rate, &ref.Frames, &ref.CreatedAt, &ref.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return ref, nil
}

// GetSequence retrieves the full pose sequence for a reference.
func (r *ReferenceRepository) GetSequence(id string) (pose.ReferenceSequence, error) {
	ref, err := r.GetByID(id)
	if err != nil {
		return pose.ReferenceSequence{}, err
	}

	rows, err := r.db.Query(
		`SELECT frame_index, x, y, z, visibility
		 FROM reference_landmarks
		 WHERE reference_id = ?
		 ORDER BY frame_index, landmark_index`,
		id,
	)
	if err != nil {
		return pose.ReferenceSequence{}, err
	}
	defer rows.Close()

	sequence := pose.ReferenceSequence{
		Rate:   ref.Rate,
		Frames: make([]pose.Frame, ref.Frames),
	}

	for rows.Next() {
		var frameIndex int
		var l pose.Landmark
		if err := rows.Scan(&frameIndex, &l.X, &l.Y, &l.Z, &l.Visibility); err != nil {
			return pose.ReferenceSequence{}, err
		}
		if frameIndex < 0 || frameIndex >= len(sequence.Frames) {
			continue
		}
		sequence.Frames[frameIndex] = append(sequence.Frames[frameIndex], l)
	}

	if err := rows.Err(); err != nil {
		return pose.ReferenceSequence{}, err
	}

	return sequence, nil
}

// List retrieves all reference metadata, newest first.
func (r *ReferenceRepository) List() ([]*Reference, error) {
	rows, err := r.db.Query(
		`SELECT id, name, rate, frames, created_at, updated_at
		 FROM references_seq ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var references []*Reference
	for rows.Next() {
		ref := &Reference{}
		err := rows.Scan(&ref.ID, &ref.Name, &ref.Rate, &ref.Frames, &ref.CreatedAt, &ref.UpdatedAt)
		if err != nil {
			return nil, err
		}
		references = append(references, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return references, nil
}

// Delete removes a reference and (via cascade) its frames.
func (r *ReferenceRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM references_seq WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
