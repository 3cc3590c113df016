package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v2"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/templates"
)

// resolve turns a descriptor such as telescope/10.0.0.5/0, or the name of a
// saved profile, into a device.
func resolve(c *cli.Context, target string) (alpaca.AlpacaDevice, error) {
	if target == "" {
		return nil, fmt.Errorf("missing device")
	}
	if strings.Contains(target, "/") {
		return alpaca.CreateClient(target, clientOptions(c)...)
	}

	st, err := openStore(c)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	profile, err := st.GetProfile(target)
	if err != nil {
		return nil, err
	}
	return profile.Open(clientOptions(c)...)
}

// invoke runs the operation named by the second argument with the rest as
// parameters. want restricts the access kind unless nil.
func invoke(c *cli.Context, want *alpaca.Access) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: %s %s", c.Command.Name, c.Command.ArgsUsage)
	}

	dev, err := resolve(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	name := c.Args().Get(1)
	op, ok := dev.Operation(name)
	if !ok {
		return fmt.Errorf("%w: %s has no operation %q (see 'alpacactl operations %s')",
			alpaca.ErrUnknownOperation, dev.Identity().Type(), name, dev.Identity().Type())
	}
	if want != nil && op.Access != *want {
		return fmt.Errorf("%s is a %s operation", name, op.Access)
	}

	args, err := op.ParseArgs(c.Args().Slice()[2:])
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	resp, err := dev.Invoke(name, args...)
	if err != nil {
		return err
	}
	return printValue(c.App.Writer, resp)
}

func printValue(w io.Writer, resp *alpaca.Response) error {
	if !resp.HasValue() {
		_, err := fmt.Fprintln(w, "OK")
		return err
	}

	var v any
	if err := resp.Decode(&v); err != nil {
		return err
	}
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func getCommand() *cli.Command {
	read := alpaca.Read
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a property",
		ArgsUsage: "<device> <operation> [args...]",
		Action:    func(c *cli.Context) error { return invoke(c, &read) },
	}
}

func putCommand() *cli.Command {
	write := alpaca.Write
	return &cli.Command{
		Name:      "put",
		Usage:     "Set a property or run a method",
		ArgsUsage: "<device> <operation> [args...]",
		Action:    func(c *cli.Context) error { return invoke(c, &write) },
	}
}

func callCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Run any operation",
		ArgsUsage: "<device> <operation> [args...]",
		Action:    func(c *cli.Context) error { return invoke(c, nil) },
	}
}

func operationsCommand() *cli.Command {
	return &cli.Command{
		Name:      "operations",
		Usage:     "List the operations of a device type",
		ArgsUsage: "<type>",
		Action: func(c *cli.Context) error {
			deviceType, err := alpaca.ParseDeviceType(c.Args().First())
			if err != nil {
				return err
			}
			dev, err := alpaca.New(deviceType, "localhost", 0)
			if err != nil {
				return err
			}

			for _, name := range dev.OperationNames() {
				op, _ := dev.Operation(name)
				params := make([]string, 0, len(op.Params))
				for _, p := range op.Params {
					s := p.Name + ":" + p.Kind.String()
					if p.Variadic {
						s += "..."
					}
					params = append(params, s)
				}
				fmt.Fprintf(c.App.Writer, "%-28s %-5s %-26s %s\n", name, op.Access, op.Attribute, strings.Join(params, " "))
			}
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show the common properties and state of a device",
		ArgsUsage: "<device>",
		Action: func(c *cli.Context) error {
			dev, err := resolve(c, c.Args().First())
			if err != nil {
				return err
			}

			tmpl, err := templates.LoadTemplates()
			if err != nil {
				return fmt.Errorf("failed to load templates: %v", err)
			}
			return templates.RenderStatus(c.App.Writer, tmpl, readStatus(dev))
		},
	}
}

func readStatus(dev alpaca.AlpacaDevice) templates.DeviceStatus {
	text := func(v any, err error) string {
		if err != nil {
			return "error: " + err.Error()
		}
		return fmt.Sprint(v)
	}

	status := templates.DeviceStatus{URL: dev.Identity().BaseURL()}
	status.Name = text(dev.Name())
	status.Description = text(dev.Description())
	status.DriverVersion = text(dev.DriverVersion())

	if version, err := dev.InterfaceVersion(); err != nil {
		status.InterfaceVersion = text(nil, err)
	} else {
		status.InterfaceVersion = strconv.Itoa(version)
	}
	if info, err := dev.DriverInfo(); err != nil {
		status.DriverInfo = []string{text(nil, err)}
	} else {
		status.DriverInfo = info
	}
	status.Connected = text(dev.Connected())

	state, err := dev.DeviceState()
	if err != nil {
		status.StateError = text(nil, err)
	}
	status.State = state
	return status
}
