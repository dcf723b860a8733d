package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velostudio/booking_bot/internal/model"
)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Create создаёт нового клиента
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (telegram_id, username, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		client.TelegramID,
		client.Username,
		client.FirstName,
		client.LastName,
		client.Phone,
	).Scan(&client.ID, &client.CreatedAt)

	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetByID получает клиента по ID
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_name, phone, created_at
		FROM clients
		WHERE id = $1
	`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByTelegramID получает клиента по Telegram ID
func (r *ClientRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_name, phone, created_at
		FROM clients
		WHERE telegram_id = $1
	`

	return r.scanOne(r.pool.QueryRow(ctx, query, telegramID))
}

// Update обновляет данные клиента
func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET username = $1, first_name = $2, last_name = $3, phone = $4
		WHERE id = $5
	`

	result, err := r.pool.Exec(
		ctx, query,
		client.Username,
		client.FirstName,
		client.LastName,
		client.Phone,
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}

func (r *ClientRepository) scanOne(row pgx.Row) (*model.Client, error) {
	var client model.Client
	err := row.Scan(
		&client.ID,
		&client.TelegramID,
		&client.Username,
		&client.FirstName,
		&client.LastName,
		&client.Phone,
		&client.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	return &client, nil
}
