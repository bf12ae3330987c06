package store

import "context"

// Stats returns aggregate figures across all snapshots.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(bytes), 0), COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0) FROM snapshots`,
	).Scan(&st.Snapshots, &st.Bytes, &st.Oldest, &st.Newest)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&st.Entries)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
