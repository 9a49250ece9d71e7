// Command ir2hid translates infrared remote-control signals into key
// output via a user-editable CSV mapping table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/SaturnOperator/ir2hid/internal/hid"
	"github.com/SaturnOperator/ir2hid/internal/ir"
	"github.com/SaturnOperator/ir2hid/internal/lut"
	"github.com/SaturnOperator/ir2hid/internal/mqtt"
	"github.com/SaturnOperator/ir2hid/internal/pipeline"
	"github.com/SaturnOperator/ir2hid/internal/status"
	"github.com/SaturnOperator/ir2hid/internal/web"
)

func main() {
	lutPath := flag.String("lut", defaultLUTPath(), "Path to the CSV mapping file")
	debounce := flag.Duration("debounce", pipeline.DefaultDebounceWindow, "Debounce window for identical signals")
	queueDepth := flag.Int("queue", pipeline.DefaultQueueDepth, "Event queue capacity")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	broker := flag.String("broker", "", "MQTT broker address (empty to disable)")
	pin := flag.Int("pin", ir.Pin, "BCM pin number for the IR demodulator")
	printTable := flag.Bool("print-table", false, "Load the mapping table, print a summary, and exit")

	flag.Parse()

	if err := run(*lutPath, *debounce, *queueDepth, *httpAddr, *broker, *pin, *printTable); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(lutPath string, debounce time.Duration, queueDepth int, httpAddr, broker string, pin int, printTable bool) error {
	// Load the mapping table. Every failure mode still yields a usable
	// (possibly empty) table; only the missing file is user-visible.
	table, loadErr := lut.Load(lutPath)
	if loadErr != nil {
		log.Printf("load %s: %v", lutPath, loadErr)
	}

	if printTable {
		fmt.Printf("%s: %d entries\n", lutPath, table.Len())
		return nil
	}

	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		DebounceMs: debounce.Milliseconds(),
		QueueDepth: queueDepth,
		LUTPath:    lutPath,
		Broker:     broker,
		HTTPAddr:   httpAddr,
	})
	tracker.SetTableEntries(table.Len())
	if errors.Is(loadErr, lut.ErrNotFound) {
		tracker.SetMessage("lut.csv not found")
	}

	// Output device
	output, err := hid.NewRealOutput()
	if err != nil {
		return fmt.Errorf("init output: %w", err)
	}
	defer output.Close()
	tracker.SetOutputConnected(output.IsConnected())

	// MQTT is optional; a broker that cannot be reached is not fatal.
	var publisher *mqtt.RealPublisher
	if broker != "" {
		publisher, err = mqtt.NewRealPublisher(broker)
		if err != nil {
			log.Printf("mqtt: %v (continuing without broker)", err)
		} else {
			defer publisher.Close()
			tracker.SetMQTTConnected(publisher.IsConnected())
		}
	}

	// HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	// Capture: the handler runs on the receiver's event path and only
	// hands the frame off. A full queue drops the frame.
	queue := pipeline.NewQueue(queueDepth)
	receiver, err := ir.NewRealReceiver(pin)
	if err != nil {
		return fmt.Errorf("init ir receiver: %w", err)
	}
	defer receiver.Close()

	if err := receiver.Start(func(msg ir.Message) {
		queue.TryPush(pipeline.SignalEvent(msg))
	}); err != nil {
		return fmt.Errorf("start ir receiver: %w", err)
	}

	// Periodic ticks refresh the output-connected flag on the status page.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			queue.TryPush(pipeline.TickEvent())
		}
	}()

	// SIGINT/SIGTERM become the terminal input event, so shutdown flows
	// through the dispatch loop like a local Back press.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	reason := make(chan string, 1)
	go func() {
		s := <-sigCh
		log.Printf("received %v, shutting down", s)
		reason <- signalName(s)
		queue.Push(pipeline.InputKeyEvent(pipeline.KeyBack, pipeline.PressShort))
	}()

	if publisher != nil {
		event := mqtt.SystemEvent{
			Timestamp:  startTime,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""),
		}
		if err := publisher.PublishSystem(event); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		}
	}

	log.Printf("started: lut=%s entries=%d debounce=%v queue=%d pin=%d", lutPath, table.Len(), debounce, queueDepth, pin)

	cfg := pipeline.Config{
		Queue:   queue,
		Table:   table,
		Output:  output,
		Tracker: tracker,
		Window:  debounce,
	}
	if publisher != nil {
		cfg.Publisher = publisher
	}
	pipeline.New(cfg).Run()

	if publisher != nil {
		why := "UI"
		select {
		case why = <-reason:
		default:
		}
		tracker.SetMQTTConnected(publisher.IsConnected())
		event := mqtt.SystemEvent{
			Timestamp:  time.Now(),
			Event:      "SHUTDOWN",
			Reason:     why,
			Retained:   true,
			RawPayload: status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", why),
		}
		if err := publisher.PublishSystem(event); err != nil {
			log.Printf("failed to publish shutdown event: %v", err)
		}
	}

	return nil
}

// defaultLUTPath is the conventional location of the mapping file under
// the user's config directory.
func defaultLUTPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "lut.csv"
	}
	return filepath.Join(dir, "ir2hid", "lut.csv")
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
