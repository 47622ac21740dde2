package main

import (
	"github.com/sirupsen/logrus"

	"github.com/campusbook/venue-booking/config"
	"github.com/campusbook/venue-booking/internal/appserver"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	v, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	cfg, err := config.ParseConfig(v)
	if err != nil {
		logrus.Fatalf("Failed to parse config: %v", err)
	}

	appserver.NewServer(cfg)
}
