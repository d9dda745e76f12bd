package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Tests swap in
// a pgxmock pool through the same interface.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stores (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            store_id BIGINT REFERENCES stores(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            store_id BIGINT NOT NULL REFERENCES stores(id),
            name TEXT NOT NULL,
            price BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            store_id BIGINT NOT NULL REFERENCES stores(id),
            total_price BIGINT NOT NULL,
            status TEXT NOT NULL,
            laundry_status TEXT NOT NULL,
            payment_method TEXT,
            payment_token TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            product_name TEXT NOT NULL,
            unit_price BIGINT NOT NULL,
            quantity INT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending ON orders(created_at) WHERE status = 'PENDING'`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_store ON products(store_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, storeID *int64) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, store_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, storeID).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.StoreID = storeID
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, store_id, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.StoreID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, store_id, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.StoreID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, store_id, name, price FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.StoreID, &p.Name, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	const query = `SELECT id, store_id, name, price FROM products WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]model.Product, len(ids))
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (number, user_id, store_id, total_price, status, laundry_status)
                             VALUES ($1, $2, $3, $4, $5, $6)
                             RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.UserID, order.StoreID, order.TotalPrice, order.Status, order.LaundryStatus,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const insertLine = `INSERT INTO order_lines (order_id, product_id, product_name, unit_price, quantity)
                            VALUES ($1, $2, $3, $4, $5)
                            RETURNING id`
		for i := range created.Lines {
			line := &created.Lines[i]
			line.OrderID = created.ID
			if err := tx.QueryRow(ctx, insertLine,
				created.ID, line.ProductID, line.ProductName, line.UnitPrice, line.Quantity,
			).Scan(&line.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	const query = `SELECT id, number, user_id, store_id, total_price, status, laundry_status,
                          payment_method, payment_token, created_at, updated_at
                   FROM orders WHERE number=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, number).Scan(
		&o.ID, &o.Number, &o.UserID, &o.StoreID, &o.TotalPrice, &o.Status, &o.LaundryStatus,
		&o.PaymentMethod, &o.PaymentToken, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.linesByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *orderRepository) linesByOrder(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	const query = `SELECT id, order_id, product_id, product_name, unit_price, quantity
                   FROM order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, number, user_id, store_id, total_price, status, laundry_status,
                          payment_method, payment_token, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.Number, &o.UserID, &o.StoreID, &o.TotalPrice, &o.Status, &o.LaundryStatus,
			&o.PaymentMethod, &o.PaymentToken, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatusIfPending performs the conditional write that serializes all
// payment transitions: only a PENDING row can move, and concurrent reporters
// race on the same predicate instead of on application locks.
func (r *orderRepository) UpdateStatusIfPending(ctx context.Context, number string, status model.OrderStatus, paymentMethod *string) (bool, error) {
	const query = `UPDATE orders
                   SET status=$1, payment_method=COALESCE($2, payment_method), updated_at=NOW()
                   WHERE number=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, status, paymentMethod, number, model.OrderStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) AttachPaymentToken(ctx context.Context, orderID int64, token string) (bool, error) {
	const query = `UPDATE orders SET payment_token=$1, updated_at=NOW()
                   WHERE id=$2 AND payment_token IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, token, orderID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) UpdateLaundryStatus(ctx context.Context, number string, from, to model.LaundryStatus) (bool, error) {
	const query = `UPDATE orders SET laundry_status=$1, updated_at=NOW()
                   WHERE number=$2 AND laundry_status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, to, number, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) SelectPendingBatch(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT id, number, user_id, store_id, total_price, status, laundry_status,
                          payment_method, payment_token, created_at, updated_at
                   FROM orders WHERE status=$1 ORDER BY created_at LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.Number, &o.UserID, &o.StoreID, &o.TotalPrice, &o.Status, &o.LaundryStatus,
			&o.PaymentMethod, &o.PaymentToken, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `UPDATE orders SET status=$1, updated_at=NOW()
                   WHERE status=$2 AND created_at < $3`
	tag, err := r.storage.pool.Exec(ctx, query, model.OrderStatusExpire, model.OrderStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes raw connection pool for advanced use.
func (s *Storage) Pool() pgxPool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
