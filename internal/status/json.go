package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event           string      `json:"event,omitempty"`
	Reason          string      `json:"reason,omitempty"`
	Proto           string      `json:"proto"`
	Addr            string      `json:"addr"`
	Cmd             string      `json:"cmd"`
	HasSignal       bool        `json:"has_signal"`
	OutputConnected bool        `json:"output_connected"`
	TableEntries    int         `json:"table_entries"`
	UptimeSeconds   int64       `json:"uptime_seconds"`
	StartTime       string      `json:"start_time"`
	Timestamp       string      `json:"timestamp"`
	MQTT            MQTTStatus  `json:"mqtt"`
	Counts          CountsJSON  `json:"event_counts"`
	Config          ConfigJSON  `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Received  int `json:"received"`
	Repeats   int `json:"repeats"`
	Debounced int `json:"debounced"`
	Emitted   int `json:"emitted"`
	NoMapping int `json:"no_mapping"`
	Skipped   int `json:"skipped"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	DebounceMs int64  `json:"debounce_ms"`
	QueueDepth int    `json:"queue_depth"`
	LUTPath    string `json:"lut_path"`
	Broker     string `json:"broker,omitempty"`
	HTTPAddr   string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Proto:           snap.Proto,
		Addr:            snap.Addr,
		Cmd:             snap.Cmd,
		HasSignal:       snap.HasSignal,
		OutputConnected: snap.OutputConnected,
		TableEntries:    snap.TableEntries,
		UptimeSeconds:   int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:       snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:       snap.Now.UTC().Format(time.RFC3339),
		MQTT:            MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Received:  snap.Counts.Received,
			Repeats:   snap.Counts.Repeats,
			Debounced: snap.Counts.Debounced,
			Emitted:   snap.Counts.Emitted,
			NoMapping: snap.Counts.NoMapping,
			Skipped:   snap.Counts.Skipped,
		},
		Config: ConfigJSON{
			DebounceMs: snap.Config.DebounceMs,
			QueueDepth: snap.Config.QueueDepth,
			LUTPath:    snap.Config.LUTPath,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
