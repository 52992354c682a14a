package repository

import (
	"context"
	"database/sql"

	"github.com/filmreel/video-rental/internal/model"
)

type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// List returns all customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,phone,is_gold FROM customers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.IsGold); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,phone,is_gold FROM customers WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Phone, &c.IsGold)
	return c, err
}

// Create inserts a customer and returns the stored row.
func (r *CustomerRepo) Create(ctx context.Context, name, phone string, isGold bool) (model.Customer, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (name, phone, is_gold) VALUES (?,?,?)",
		name, phone, isGold)
	if err != nil {
		return model.Customer{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Customer{}, err
	}
	return model.Customer{ID: uint64(id), Name: name, Phone: phone, IsGold: isGold}, nil
}

// Update rewrites a customer's fields. It returns sql.ErrNoRows when no
// customer with the given id exists. The post-update SELECT also covers
// MySQL reporting zero affected rows for no-op updates.
func (r *CustomerRepo) Update(ctx context.Context, id uint64, name, phone string, isGold bool) (model.Customer, error) {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET name=?, phone=?, is_gold=? WHERE id=?",
		name, phone, isGold, id); err != nil {
		return model.Customer{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a customer. sql.ErrNoRows when the id is absent.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM customers WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
