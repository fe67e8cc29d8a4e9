package main

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/config"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Simulates a PZEM-004T sensor on a smart plug publishing over MQTT.
type telemetry struct {
	DeviceID    string  `json:"device_id"`
	Voltage     float64 `json:"voltage"`
	Current     float64 `json:"current"`
	Power       float64 `json:"power"`
	Energy      float64 `json:"energy"`
	Frequency   float64 `json:"frequency"`
	PowerFactor float64 `json:"power_factor"`
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	for i := 0; i < 100; i++ {
		current := 0.5 + rand.Float64()*2
		voltage := 228 + rand.Float64()*6
		pf := 0.9 + rand.Float64()*0.1
		t := telemetry{
			DeviceID:    "plug-001",
			Voltage:     voltage,
			Current:     current,
			Power:       voltage * current * pf,
			Energy:      float64(i) * 0.01,
			Frequency:   49.9 + rand.Float64()*0.2,
			PowerFactor: pf,
		}
		payload, _ := json.Marshal(t)
		token := client.Publish(config.MQTTTopic(), 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
