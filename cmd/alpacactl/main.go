package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/pkg/store"
)

// clientOptions builds the library options from the global flags.
func clientOptions(c *cli.Context) []alpaca.Option {
	opts := []alpaca.Option{
		alpaca.WithHTTPClient(&http.Client{Timeout: c.Duration("timeout")}),
		alpaca.WithLogger(log.StandardLogger()),
	}
	if c.IsSet("scheme") {
		opts = append(opts, alpaca.WithScheme(c.String("scheme")))
	}
	if c.IsSet("api-version") {
		opts = append(opts, alpaca.WithAPIVersion(c.Int("api-version")))
	}
	if id := c.Uint("client-id"); id != 0 {
		opts = append(opts, alpaca.WithClientID(uint32(id)))
	}
	return opts
}

func openStore(c *cli.Context) (*store.Store, error) {
	st, err := store.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	return st, nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "alpacactl",
		Usage: "Control ASCOM Alpaca devices",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
				Value:   false,
				EnvVars: []string{"DEBUG"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Settings database",
				Value:   "alpaca.db",
				EnvVars: []string{"ALPACA_DB"},
			},
			&cli.StringFlag{
				Name:    "scheme",
				Usage:   "URL scheme, http or https",
				Value:   alpaca.DefaultScheme,
				EnvVars: []string{"ALPACA_SCHEME"},
			},
			&cli.IntFlag{
				Name:    "api-version",
				Usage:   "Alpaca API version",
				Value:   alpaca.DefaultAPIVersion,
				EnvVars: []string{"ALPACA_API_VERSION"},
			},
			&cli.UintFlag{
				Name:    "client-id",
				Usage:   "ClientID sent with every request",
				EnvVars: []string{"ALPACA_CLIENT_ID"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "HTTP request timeout",
				Value: 10 * time.Second,
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			getCommand(),
			putCommand(),
			callCommand(),
			operationsCommand(),
			statusCommand(),
			serverCommand(),
			discoverCommand(),
			deviceCommand(),
			mqttCommand(),
			watchCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
