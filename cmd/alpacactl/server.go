package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/templates"
)

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:      "server",
		Usage:     "Show the description and devices of an Alpaca server",
		ArgsUsage: "<host:port>",
		Action: func(c *cli.Context) error {
			address := c.Args().First()
			status, err := readServer(c, address)
			if err != nil {
				return err
			}

			tmpl, err := templates.LoadTemplates()
			if err != nil {
				return fmt.Errorf("failed to load templates: %v", err)
			}
			return templates.RenderServer(c.App.Writer, tmpl, status)
		},
	}
}

func readServer(c *cli.Context, address string) (templates.ServerStatus, error) {
	status := templates.ServerStatus{Address: address}

	mgmt, err := alpaca.NewManagement(address, clientOptions(c)...)
	if err != nil {
		return status, err
	}

	if status.Versions, err = mgmt.APIVersions(); err != nil {
		return status, fmt.Errorf("apiversions: %w", err)
	}
	if status.Description, err = mgmt.Description(); err != nil {
		return status, fmt.Errorf("description: %w", err)
	}
	if status.Devices, err = mgmt.ConfiguredDevices(); err != nil {
		return status, fmt.Errorf("configureddevices: %w", err)
	}
	return status, nil
}

func discoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Find Alpaca servers on the local network",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "wait",
				Usage: "How long to wait for replies",
				Value: 2 * time.Second,
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "Address probes are sent to",
				Value: fmt.Sprintf("255.255.255.255:%d", alpaca.DiscoveryPort),
			},
			&cli.BoolFlag{
				Name:  "devices",
				Usage: "Also list the devices of every server found",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithTimeout(c.Context, c.Duration("wait"))
			defer cancel()

			servers, err := alpaca.DiscoverAt(ctx, c.String("target"), clientOptions(c)...)
			if err != nil {
				return err
			}
			if len(servers) == 0 {
				log.Info("No Alpaca servers found")
				return nil
			}

			for _, server := range servers {
				fmt.Fprintln(c.App.Writer, server.Address())
				if !c.Bool("devices") {
					continue
				}

				status, err := readServer(c, server.Address())
				if err != nil {
					log.Warnf("%s: %v", server.Address(), err)
					continue
				}
				for _, dev := range status.Devices {
					fmt.Fprintf(c.App.Writer, "  %s  %s\n", dev.Descriptor(server.Address()), dev.Name)
				}
			}
			return nil
		},
	}
}
