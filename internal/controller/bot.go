package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/velostudio/booking_bot/internal/controller/callbacks"
	"github.com/velostudio/booking_bot/internal/controller/handlers"
	"github.com/velostudio/booking_bot/internal/controller/state"
	"github.com/velostudio/booking_bot/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	clientService *service.ClientService,
	bookingService *service.BookingService,
	notificationService *service.NotificationService,
	adminChatID int64,
	logger *zap.Logger,
) *BotController {
	// Менеджер состояний многошаговых диалогов с TTL
	stateManager := state.NewManager(state.DefaultTTL)

	cmdHandlers := handlers.NewHandlers(
		clientService,
		bookingService,
		notificationService,
		stateManager,
		adminChatID,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		clientService,
		bookingService,
		notificationService,
		stateManager,
		cmdHandlers.AdminSenders,
		cmdHandlers.ShowSchedule,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedule", bot.MatchTypeExact, c.handlers.HandleSchedule)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancelDialog)

	// Журнал уведомлений, только для админ-чата
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/log", bot.MatchTypeExact, c.handlers.HandleJournal)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "schedule", Description: "📅 Расписание и запись"},
		{Command: "mybookings", Description: "🚴 Мои записи"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	return nil
}
