package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/raceworks/car-number-registry/internal/config"
	"github.com/raceworks/car-number-registry/internal/models"
)

type Notifier interface {
	NotifyReservation(registration models.Registration) error
}

// DiscordNotifier announces new reservations in a channel. It is optional:
// without a bot token the constructor returns an error and the caller runs
// without notifications.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, err
	}

	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordNotificationsChannelID,
	}, nil
}

func (n *DiscordNotifier) NotifyReservation(registration models.Registration) error {
	carStr := ""
	if registration.CarMake != "" || registration.CarModel != "" {
		carStr = fmt.Sprintf("\n**Car:** %s %s", registration.CarMake, registration.CarModel)
	}

	message := fmt.Sprintf("🏁 **Number Reserved**\n**Driver:** %s\n**Number:** %s\n**Season:** %d\n**Valid through:** %s%s",
		registration.OwnerName(),
		registration.CarNumber,
		registration.ReservedYear,
		registration.ExpirationDate.Format("2006-01-02"),
		carStr,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
