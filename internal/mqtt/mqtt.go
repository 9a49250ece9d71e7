// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SaturnOperator/ir2hid/internal/pipeline"
)

// Topic is the MQTT topic for processed key events.
const Topic = "remote/ir2hid/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "remote/ir2hid/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishKey sends a processed key event to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishKey(event pipeline.KeyEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure for key events.
type Payload struct {
	IR2HID KeyPayload `json:"ir2hid"`
}

// KeyPayload contains the key event details.
type KeyPayload struct {
	Timestamp string `json:"timestamp"`
	Protocol  string `json:"protocol"`
	Address   string `json:"address"`
	Command   string `json:"command"`
	Outcome   string `json:"outcome"`
	HID       string `json:"hid,omitempty"`
}

// FormatKeyPayload creates the JSON payload for a key event.
func FormatKeyPayload(event pipeline.KeyEvent) ([]byte, error) {
	kp := KeyPayload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Protocol:  event.Sig.Protocol.Name(),
		Address:   fmt.Sprintf("0x%04X", event.Sig.Address),
		Command:   fmt.Sprintf("0x%08X", event.Sig.Command),
		Outcome:   string(event.Outcome),
	}
	if event.Outcome == pipeline.OutcomeEmitted || event.Outcome == pipeline.OutcomeSkipped {
		kp.HID = fmt.Sprintf("0x%02X", event.Code)
	}
	return json.Marshal(Payload{IR2HID: kp})
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
