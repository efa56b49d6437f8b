// Command framecast-recv binds a receiving endpoint and prints a line per
// assembled frame, with periodic endpoint statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framecast"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "framecast-recv: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log_level: %w", err)
	}
	logrus.SetLevel(level)

	receiver, err := framecast.NewReceiver(cfg.Bind, cfg.Options)
	if err != nil {
		return err
	}
	defer receiver.Close()

	for {
		frame, err := receiver.ReceiveFrame()
		if errors.Is(err, framecast.ErrTimeout) {
			logrus.WithFields(logrus.Fields{
				"function": "run",
				"timeout":  cfg.Options.Timeout,
			}).Debug("No frame within window")
			continue
		}
		if err != nil {
			return err
		}

		total := 0
		for i := 0; i < frame.SubframeCount(); i++ {
			total += frame.Size(i)
		}
		stats := receiver.Stats()
		logrus.WithFields(logrus.Fields{
			"function":     "run",
			"frame_number": frame.Number(),
			"total_bytes":  total,
			"delivered":    stats.FramesDelivered,
			"abandoned":    stats.FramesAbandoned,
		}).Info("Frame assembled")
	}
}
