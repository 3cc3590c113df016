package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"alpacaclient/pkg/store"
)

func deviceCommand() *cli.Command {
	return &cli.Command{
		Name:  "device",
		Usage: "Manage saved device profiles",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Save a device under a name",
				ArgsUsage: "<name> <type/address/number>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scheme", Usage: "URL scheme for this device"},
					&cli.IntFlag{Name: "api-version", Usage: "API version for this device"},
					&cli.UintFlag{Name: "client-id", Usage: "ClientID for this device"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: device add %s", c.Command.ArgsUsage)
					}
					return withStore(c, func(st *store.Store) error {
						return st.SaveProfile(store.Profile{
							Name:       c.Args().Get(0),
							Descriptor: c.Args().Get(1),
							Scheme:     c.String("scheme"),
							APIVersion: c.Int("api-version"),
							ClientID:   uint32(c.Uint("client-id")),
						})
					})
				},
			},
			{
				Name:  "list",
				Usage: "List saved devices",
				Action: func(c *cli.Context) error {
					return withStore(c, func(st *store.Store) error {
						profiles, err := st.ListProfiles()
						if err != nil {
							return err
						}

						w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
						fmt.Fprintln(w, "NAME\tDEVICE\tURL")
						for _, p := range profiles {
							url := "invalid"
							if dev, err := p.Open(); err == nil {
								url = dev.Identity().BaseURL()
							}
							fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Descriptor, url)
						}
						return w.Flush()
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "Delete a saved device",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					return withStore(c, func(st *store.Store) error {
						return st.DeleteProfile(c.Args().First())
					})
				},
			},
			{
				Name:      "import",
				Usage:     "Import devices from a YAML file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					f, err := os.Open(c.Args().First())
					if err != nil {
						return err
					}
					defer f.Close()

					return withStore(c, func(st *store.Store) error {
						n, err := st.ImportProfiles(f)
						if err != nil {
							return err
						}
						log.Infof("Imported %d devices", n)
						return nil
					})
				},
			},
		},
	}
}

func mqttCommand() *cli.Command {
	return &cli.Command{
		Name:  "mqtt",
		Usage: "Configure the MQTT broker used by watch",
		Subcommands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Change broker settings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Usage: "Broker host"},
					&cli.IntFlag{Name: "port", Usage: "Broker port"},
					&cli.StringFlag{Name: "username", Usage: "Broker username"},
					&cli.StringFlag{Name: "password", Usage: "Broker password", EnvVars: []string{"MQTT_PASSWORD"}},
					&cli.StringFlag{Name: "topic-root", Usage: "Root of published topics"},
				},
				Action: func(c *cli.Context) error {
					return withStore(c, func(st *store.Store) error {
						cfg, err := st.GetMQTTConfig()
						if err != nil {
							return err
						}
						if c.IsSet("host") {
							cfg.Host = c.String("host")
						}
						if c.IsSet("port") {
							cfg.Port = c.Int("port")
						}
						if c.IsSet("username") {
							cfg.Username = c.String("username")
						}
						if c.IsSet("password") {
							cfg.Password = c.String("password")
						}
						if c.IsSet("topic-root") {
							cfg.TopicRoot = c.String("topic-root")
						}
						return st.SetMQTTConfig(cfg)
					})
				},
			},
			{
				Name:  "show",
				Usage: "Print broker settings",
				Action: func(c *cli.Context) error {
					return withStore(c, func(st *store.Store) error {
						cfg, err := st.GetMQTTConfig()
						if err != nil {
							return err
						}
						password := ""
						if cfg.Password != "" {
							password = "********"
						}
						fmt.Fprintf(c.App.Writer, "host:       %s\nport:       %d\nusername:   %s\npassword:   %s\ntopic root: %s\n",
							cfg.Host, cfg.Port, cfg.Username, password, cfg.TopicRoot)
						return nil
					})
				},
			},
		},
	}
}

func withStore(c *cli.Context, fn func(*store.Store) error) error {
	st, err := openStore(c)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
