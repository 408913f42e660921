package events

import (
	"context"
	"encoding/json"
)

// mqttClient is satisfied by common/mqtt.Client.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	QoS() byte
}

// MQTTPublisher 发布到 MQTT 主题
type MQTTPublisher struct {
	client mqttClient
	topic  string
}

func NewMQTTPublisher(client mqttClient, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic}
}

func (p *MQTTPublisher) Publish(_ context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.client.Publish(p.topic, p.client.QoS(), false, payload)
}
