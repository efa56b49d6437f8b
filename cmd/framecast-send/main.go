// Command framecast-send streams synthetic frames to a receiving endpoint
// at a fixed interval, one subframe per configured size.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framecast"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "framecast-send: %v\n", err)
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

	sender, err := framecast.NewSender(cfg.Destination, len(cfg.SubframeSizes))
	if err != nil {
		return err
	}
	defer sender.Close()

	subframes := make([][]byte, len(cfg.SubframeSizes))
	for i, size := range cfg.SubframeSizes {
		subframes[i] = make([]byte, size)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for n := 0; n < cfg.Frames; n++ {
		frameNumber := uint16(n)
		for _, data := range subframes {
			fill(data, byte(frameNumber))
		}
		if err := sender.SendFrame(frameNumber, subframes); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"function":     "run",
			"frame_number": frameNumber,
		}).Debug("Frame sent")
		<-ticker.C
	}

	logrus.WithFields(logrus.Fields{
		"function": "run",
		"frames":   cfg.Frames,
	}).Info("Stream finished")
	return nil
}

// fill writes a recognizable per-frame pattern so the receiving side can
// eyeball payload integrity.
func fill(data []byte, seed byte) {
	for i := range data {
		data[i] = seed + byte(i)
	}
}
