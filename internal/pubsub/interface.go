package pubsub

// PubSubClient publishes and decodes collection run events.
type PubSubClient interface {
	SendMessage(topic string, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
