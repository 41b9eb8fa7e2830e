package config

import (
	"os"
	"strconv"
)

type NotifierConfig struct {
	WebhookURL  string
	APIKey      string
	WorkerCount int
}

func LoadNotifierConfig() *NotifierConfig {
	workerCount, err := strconv.Atoi(os.Getenv("NOTIFIER_WORKERS"))
	if err != nil || workerCount <= 0 {
		workerCount = 3
	}

	return &NotifierConfig{
		WebhookURL:  os.Getenv("NOTIFIER_WEBHOOK_URL"),
		APIKey:      os.Getenv("NOTIFIER_API_KEY"),
		WorkerCount: workerCount,
	}
}
