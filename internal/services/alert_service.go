package services

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"stockroom/internal/models"
)

// AlertService получает событие блокировки аккаунта. Доставка best-effort:
// ошибки логируются и не влияют на исход логина.
type AlertService interface {
	NotifyLockout(user *models.User, lockFor time.Duration)
}

type alertService struct {
	emails EmailService     // может быть nil
	bot    *tgbotapi.BotAPI // может быть nil
	chatID int64
}

func NewAlertService(emails EmailService, botToken string, chatID int64) AlertService {
	var bot *tgbotapi.BotAPI
	if botToken != "" {
		b, err := tgbotapi.NewBotAPI(botToken)
		if err != nil {
			log.Printf("[alerts][init] telegram bot unavailable: %v", err)
		} else {
			bot = b
		}
	}
	return &alertService{emails: emails, bot: bot, chatID: chatID}
}

func (s *alertService) NotifyLockout(user *models.User, lockFor time.Duration) {
	if s.emails != nil {
		if err := s.emails.SendLockoutEmail(user.Email, user.FirstName); err != nil {
			log.Printf("[alerts][lockout] email to %s failed: %v", user.Email, err)
		}
	}
	if s.bot != nil && s.chatID != 0 {
		text := fmt.Sprintf("Account %s locked for %s after repeated failed logins", user.Email, lockFor)
		if _, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
			log.Printf("[alerts][lockout] telegram send failed: %v", err)
		}
	}
}
