package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"alpacaclient/pkg/telemetry"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Poll device state and publish it to MQTT",
		ArgsUsage: "<device>...",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Polling interval",
				Value:   5 * time.Second,
			},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: watch %s", c.Command.ArgsUsage)
	}
	interval := c.Duration("interval")
	if interval <= 0 {
		return fmt.Errorf("invalid interval: %s", interval)
	}

	st, err := openStore(c)
	if err != nil {
		return err
	}
	cfg, err := st.GetMQTTConfig()
	st.Close()
	if err != nil {
		return err
	}

	devices := make([]telemetry.StateSource, 0, c.NArg())
	for _, target := range c.Args().Slice() {
		dev, err := resolve(c, target)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
		devices = append(devices, dev)
	}

	client, err := telemetry.Connect(cfg, fmt.Sprintf("alpacactl-%d", os.Getpid()))
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Infof("Connected to MQTT broker %s:%d", cfg.Host, cfg.Port)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pub := telemetry.NewPublisher(client, cfg.TopicRoot, log.WithField("component", "telemetry"))

	errs := make(chan error, len(devices))
	for _, dev := range devices {
		go func(dev telemetry.StateSource) {
			errs <- telemetry.Watch(ctx, dev, interval, pub)
		}(dev)
	}

	var firstErr error
	for range devices {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	return firstErr
}
