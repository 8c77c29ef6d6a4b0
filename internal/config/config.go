package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	CurrentSeason                 int    `mapstructure:"CURRENT_SEASON"`
	ExpiringSoonDays              int    `mapstructure:"EXPIRING_SOON_DAYS"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "car_numbers.db")
	viper.SetDefault("CURRENT_SEASON", time.Now().Year())
	viper.SetDefault("EXPIRING_SOON_DAYS", 30)

	viper.BindEnv("PORT")
	viper.BindEnv("DATABASE_PATH")
	viper.BindEnv("CURRENT_SEASON")
	viper.BindEnv("EXPIRING_SOON_DAYS")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
