package main

import (
	"context"
	"time"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/config"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/database"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/service"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// The ingestor bridges plugs that publish over MQTT instead of HTTP.
// Messages carry the same JSON payload as POST /pzem and run through the
// same ingestion path.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	tokens, err := auth.NewJWTManager(config.JWTSecret(), config.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("jwt setup failed")
	}

	svcs := service.New(db, tokens)

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		if _, err := svcs.Ingest.Submit(context.Background(), msg.Payload()); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("ingest failed")
		}
	}

	if token := client.Subscribe(config.MQTTTopic(), 0, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", config.MQTTTopic()).Msg("ingestor running; Ctrl+C to stop")
	for {
		time.Sleep(10 * time.Second)
	}
}
