package sqlite

import "fmt"

// row is satisfied by *sql.Row.
type row interface {
	Scan(dest ...any) error
}

func scanEntry(r row) (*Entry, error) {
	var (
		e     Entry
		stamp string
	)
	if err := r.Scan(&e.Key, &e.Value, &stamp); err != nil {
		return nil, err
	}

	at, err := ParseTimestamp(stamp)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at for key %q: %w", e.Key, err)
	}
	e.UpdatedAt = at
	return &e, nil
}
