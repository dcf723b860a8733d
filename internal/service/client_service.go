package service

import (
	"context"
	"fmt"

	"github.com/velostudio/booking_bot/internal/model"
	"github.com/velostudio/booking_bot/internal/repository"
	"go.uber.org/zap"
)

type ClientService struct {
	clientRepo *repository.ClientRepository
	logger     *zap.Logger
}

func NewClientService(clientRepo *repository.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// RegisterClient регистрирует или обновляет клиента по Telegram ID.
// Второй результат true, если клиент создан впервые.
func (s *ClientService) RegisterClient(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.Client, bool, error) {
	existing, err := s.clientRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, false, fmt.Errorf("check existing client: %w", err)
	}

	// Если клиент уже существует, обновляем данные
	if existing != nil {
		existing.Username = username
		existing.FirstName = firstName
		existing.LastName = lastName

		if err := s.clientRepo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update client: %w", err)
		}

		return existing, false, nil
	}

	client := &model.Client{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, false, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info("New client registered",
		zap.Int64("client_id", client.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return client, true, nil
}

// GetByTelegramID получает клиента по Telegram ID
func (s *ClientService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	return s.clientRepo.GetByTelegramID(ctx, telegramID)
}

// SetPhone сохраняет телефон клиента
func (s *ClientService) SetPhone(ctx context.Context, clientID int64, phone string) error {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("get client: %w", err)
	}
	if client == nil {
		return fmt.Errorf("client not found")
	}

	client.Phone = &phone
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return fmt.Errorf("update client phone: %w", err)
	}

	return nil
}
