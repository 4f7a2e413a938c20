package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Errorf("campctl: %s", err)
		os.Exit(1)
	}
}
