package repositories

import (
	"database/sql"

	"stockroom/internal/models"
)

type ItemRepository interface {
	Create(item *models.Item) error
	GetByID(id int) (*models.Item, error)
	List() ([]*models.Item, error)
	ListByUser(userID int) ([]*models.Item, error)
	Update(item *models.Item) error
	Delete(id int) error
}

type itemRepository struct {
	DB *sql.DB
}

func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{DB: db}
}

func (r *itemRepository) Create(item *models.Item) error {
	const q = `
		INSERT INTO items (item_name, description, quantity, user_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`
	return r.DB.QueryRow(q,
		item.ItemName,
		item.Description,
		item.Quantity,
		item.UserID,
	).Scan(&item.ID)
}

func (r *itemRepository) GetByID(id int) (*models.Item, error) {
	const q = `
		SELECT id, item_name, COALESCE(description,''), quantity, user_id
		FROM items
		WHERE id = $1
	`
	item := &models.Item{}
	err := r.DB.QueryRow(q, id).Scan(
		&item.ID, &item.ItemName, &item.Description, &item.Quantity, &item.UserID,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) List() ([]*models.Item, error) {
	const q = `
		SELECT id, item_name, COALESCE(description,''), quantity, user_id
		FROM items
		ORDER BY id
	`
	return r.queryItems(q)
}

func (r *itemRepository) ListByUser(userID int) ([]*models.Item, error) {
	const q = `
		SELECT id, item_name, COALESCE(description,''), quantity, user_id
		FROM items
		WHERE user_id = $1
		ORDER BY id
	`
	return r.queryItems(q, userID)
}

func (r *itemRepository) queryItems(q string, args ...interface{}) ([]*models.Item, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.ItemName, &item.Description, &item.Quantity, &item.UserID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepository) Update(item *models.Item) error {
	const q = `
		UPDATE items
		SET item_name=$1, description=$2, quantity=$3
		WHERE id = $4
	`
	_, err := r.DB.Exec(q, item.ItemName, item.Description, item.Quantity, item.ID)
	return err
}

func (r *itemRepository) Delete(id int) error {
	const q = `DELETE FROM items WHERE id = $1`
	_, err := r.DB.Exec(q, id)
	return err
}
