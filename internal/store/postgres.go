package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// transactionsColumn maps a product's transaction ledger onto a JSONB column.
type transactionsColumn []models.Transaction

func (t transactionsColumn) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal([]models.Transaction(t))
}

func (t *transactionsColumn) Scan(src interface{}) error {
	if src == nil {
		*t = transactionsColumn{}
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("transactions column: unexpected type %T", src)
	}
	return json.Unmarshal(raw, (*[]models.Transaction)(t))
}

type productRow struct {
	ID           int64              `db:"id"`
	Name         string             `db:"name"`
	Category     string             `db:"category"`
	Description  string             `db:"description"`
	Price        float64            `db:"price"`
	Quantity     int                `db:"quantity"`
	Transactions transactionsColumn `db:"transactions"`
	Image        string             `db:"image"`
}

func (r productRow) model() models.Product {
	return models.Product{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		Description:  r.Description,
		Price:        r.Price,
		Quantity:     r.Quantity,
		Transactions: []models.Transaction(r.Transactions),
		Image:        r.Image,
	}
}

type saleRow struct {
	ID        int64     `db:"id"`
	ProductID int64     `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Date      time.Time `db:"date"`
	Status    string    `db:"status"`
}

func (r saleRow) model() models.Sale {
	return models.Sale{ID: r.ID, ProductID: r.ProductID, Quantity: r.Quantity, Date: r.Date, Status: r.Status}
}

type customerRow struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Phone string `db:"phone"`
}

func (r customerRow) model() models.Customer {
	return models.Customer{ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// PostgresStore backs the stand-in service with Postgres.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to Postgres and ensures the schema exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		quantity INT NOT NULL DEFAULT 0,
		transactions JSONB NOT NULL DEFAULT '[]',
		image TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status TEXT NOT NULL DEFAULT 'active'
	);
	CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT ''
	);`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ListProducts retrieves all products
func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM products ORDER BY id"); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.model())
	}
	return products, nil
}

// CreateProduct inserts a product and returns it with the assigned id
func (s *PostgresStore) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	query := `
		INSERT INTO products (name, category, description, price, quantity, transactions, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := s.db.GetContext(ctx, &product.ID, query,
		product.Name, product.Category, product.Description, product.Price,
		product.Quantity, transactionsColumn(product.Transactions), product.Image)
	if err != nil {
		return models.Product{}, err
	}
	if product.Transactions == nil {
		product.Transactions = []models.Transaction{}
	}
	return product, nil
}

// ReplaceProduct overwrites the full product record
func (s *PostgresStore) ReplaceProduct(ctx context.Context, id int64, product models.Product) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE products SET name=$1, category=$2, description=$3, price=$4, quantity=$5, transactions=$6, image=$7 WHERE id=$8`,
		product.Name, product.Category, product.Description, product.Price,
		product.Quantity, transactionsColumn(product.Transactions), product.Image, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteProduct removes a product permanently
func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id=$1", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListSales retrieves all sales
func (s *PostgresStore) ListSales(ctx context.Context) ([]models.Sale, error) {
	var rows []saleRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM sales ORDER BY id"); err != nil {
		return nil, err
	}
	sales := make([]models.Sale, 0, len(rows))
	for _, r := range rows {
		sales = append(sales, r.model())
	}
	return sales, nil
}

// CreateSale inserts a sale and returns it with the assigned id
func (s *PostgresStore) CreateSale(ctx context.Context, sale models.Sale) (models.Sale, error) {
	query := `
		INSERT INTO sales (product_id, quantity, date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if err := s.db.GetContext(ctx, &sale.ID, query, sale.ProductID, sale.Quantity, sale.Date, sale.Status); err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

// ReplaceSale overwrites the full sale record
func (s *PostgresStore) ReplaceSale(ctx context.Context, id int64, sale models.Sale) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE sales SET product_id=$1, quantity=$2, date=$3, status=$4 WHERE id=$5",
		sale.ProductID, sale.Quantity, sale.Date, sale.Status, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListCustomers retrieves all customers
func (s *PostgresStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var rows []customerRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM customers ORDER BY id"); err != nil {
		return nil, err
	}
	customers := make([]models.Customer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, r.model())
	}
	return customers, nil
}

// CreateCustomer inserts a customer and returns it with the assigned id
func (s *PostgresStore) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	query := `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := s.db.GetContext(ctx, &customer.ID, query, customer.Name, customer.Email, customer.Phone); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// ReplaceCustomer overwrites the full customer record
func (s *PostgresStore) ReplaceCustomer(ctx context.Context, id int64, customer models.Customer) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE customers SET name=$1, email=$2, phone=$3 WHERE id=$4",
		customer.Name, customer.Email, customer.Phone, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteCustomer removes a customer
func (s *PostgresStore) DeleteCustomer(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id=$1", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
