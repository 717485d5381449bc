package item

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gjone124/restaurant-finder-backend/internal/ids"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listItemsQuery = `
		SELECT id, name, cuisine, address, image, website, owner
		FROM items
		ORDER BY id
	`
	getItemByIDQuery = `
		SELECT id, name, cuisine, address, image, website, owner
		FROM items
		WHERE id = $1
	`
	insertItemQuery = `
		INSERT INTO items (id, name, cuisine, address, image, website, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	deleteItemQuery = `DELETE FROM items WHERE id = $1`
)

// Postgres error codes surfaced by the items table's constraints.
const (
	checkViolation      = "23514"
	foreignKeyViolation = "23503"
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Item, error) {
	rows, err := r.db.Query(listItemsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Item, error) {
	return scanItem(r.db.QueryRow(getItemByIDQuery, id))
}

func (r *PostgresRepository) Create(item Item) (Item, error) {
	if item.ID == "" {
		item.ID = ids.New()
	}

	_, err := r.db.Exec(
		insertItemQuery,
		item.ID,
		item.Name,
		item.Cuisine,
		item.Address,
		item.Image,
		item.Website,
		item.Owner,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == checkViolation || pgErr.Code == foreignKeyViolation) {
			return Item{}, ErrInvalidData
		}
		return Item{}, err
	}

	return item, nil
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteItemQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanItem(scanner rowScanner) (Item, error) {
	it := Item{}
	if err := scanner.Scan(&it.ID, &it.Name, &it.Cuisine, &it.Address, &it.Image, &it.Website, &it.Owner); err != nil {
		if err == sql.ErrNoRows {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}

	return it, nil
}
