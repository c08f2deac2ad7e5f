// Command yarsademo walks through the whole toy RSA pipeline: it draws two
// primes, generates a key pair, encrypts a message, decrypts it with the
// private key and finally attacks the ciphertext with the public key alone.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/YaCodeDev/GoYaToyRSA/config"
	"github.com/YaCodeDev/GoYaToyRSA/yalogger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cfg Config

	config.LoadConfigStructFromEnv(&cfg, yalogger.NewBaseLogger(nil).NewLogger())

	log := yalogger.NewBaseLogger(&yalogger.Config{
		BaseLoggerType:  yalogger.Logrus,
		Level:           cfg.LogLevel,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}).NewLogger().WithRandomRequestID()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}
