package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// References table - one row per ingested reference sequence
		`CREATE TABLE IF NOT EXISTS references_seq (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			rate INTEGER NOT NULL DEFAULT 60,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Reference landmarks table - normalized landmark positions per frame
		`CREATE TABLE IF NOT EXISTS reference_landmarks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference_id TEXT NOT NULL REFERENCES references_seq(id) ON DELETE CASCADE,
			frame_index INTEGER NOT NULL,
			landmark_index INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			visibility REAL NOT NULL DEFAULT 0
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_reference_landmarks_reference_id ON reference_landmarks(reference_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reference_landmarks_frame ON reference_landmarks(reference_id, frame_index)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
