package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/bartossh/Base58/alphabet"
	"github.com/bartossh/Base58/codec"
	"github.com/bartossh/Base58/codecclient"
	"github.com/bartossh/Base58/codecserver"
	"github.com/bartossh/Base58/configuration"
	"github.com/bartossh/Base58/logger"
	"github.com/bartossh/Base58/logging"
	"github.com/bartossh/Base58/logo"
	"github.com/bartossh/Base58/stdoutwriter"
	"github.com/bartossh/Base58/telemetry"
)

const usage = `Base58 encodes and decodes Base58 and Base58Check text in bitcoin, monero, flickr and ripple alphabets.
It can also serve the codec over HTTP and talk to a running codec server.`

func main() {
	var file, envFile, alphabetName string
	configurator := func() (configuration.Configuration, error) {
		cfg := configuration.Default()
		if file != "" {
			var err error
			cfg, err = configuration.Read(file)
			if err != nil {
				return cfg, err
			}
		}
		if err := configuration.LoadEnv(&cfg, envFile); err != nil {
			return cfg, err
		}
		if alphabetName != "" {
			cfg.Codec.DefaultAlphabet = alphabetName
		}
		return cfg, cfg.Validate()
	}

	app := &cli.App{
		Name:  "base58",
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Load configuration from `FILE`",
				Destination: &file,
			},
			&cli.StringFlag{
				Name:        "env",
				Usage:       "Load environment overrides from `FILE`",
				Value:       ".env",
				Destination: &envFile,
			},
			&cli.StringFlag{
				Name:        "alphabet",
				Aliases:     []string{"a"},
				Usage:       "Alphabet `NAME`, one of bitcoin, monero, flickr, ripple",
				Destination: &alphabetName,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Encodes INPUT, use - to read it from the standard input",
				ArgsUsage: "INPUT",
				Flags:     encodeFlags(),
				Action: func(c *cli.Context) error {
					cfg, err := configurator()
					if err != nil {
						return err
					}
					return encode(c, cfg)
				},
			},
			{
				Name:      "decode",
				Usage:     "Decodes TEXT, use - to read it from the standard input",
				ArgsUsage: "TEXT",
				Flags:     decodeFlags(),
				Action: func(c *cli.Context) error {
					cfg, err := configurator()
					if err != nil {
						return err
					}
					return decode(c, cfg)
				},
			},
			{
				Name:  "alphabets",
				Usage: "Lists supported alphabets",
				Action: func(_ *cli.Context) error {
					cfg, err := configurator()
					if err != nil {
						return err
					}
					return listAlphabets(cfg)
				},
			},
			{
				Name:      "validate",
				Usage:     "Reports characters of TEXT that do not belong to each alphabet, or to the one given with -a",
				ArgsUsage: "TEXT",
				Action: func(c *cli.Context) error {
					text, err := readArgument(c.Args().Slice(), os.Stdin)
					if err != nil {
						return err
					}
					return validate(text, alphabetName)
				},
			},
			{
				Name:  "serve",
				Usage: "Serves the codec over HTTP with prometheus telemetry",
				Action: func(_ *cli.Context) error {
					cfg, err := configurator()
					if err != nil {
						return err
					}
					logo.Display()
					return serve(cfg)
				},
			},
			{
				Name:  "remote",
				Usage: "Talks to a running codec server",
				Subcommands: []*cli.Command{
					{
						Name:      "encode",
						ArgsUsage: "INPUT",
						Flags:     encodeFlags(),
						Action: func(c *cli.Context) error {
							cfg, err := configurator()
							if err != nil {
								return err
							}
							return remoteEncode(c, cfg, alphabetName)
						},
					},
					{
						Name:      "decode",
						ArgsUsage: "TEXT",
						Flags:     decodeFlags(),
						Action: func(c *cli.Context) error {
							cfg, err := configurator()
							if err != nil {
								return err
							}
							return remoteDecode(c, cfg, alphabetName)
						},
					},
					{
						Name: "alphabets",
						Action: func(_ *cli.Context) error {
							cfg, err := configurator()
							if err != nil {
								return err
							}
							client := codecclient.New(cfg.Client)
							list, err := client.Alphabets()
							if err != nil {
								return err
							}
							for _, a := range list.Alphabets {
								fmt.Printf("%-8s %s\n", a.Name, a.Symbols)
							}
							return nil
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func encodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "check", Usage: "Append a checksum"},
		&cli.StringFlag{Name: "version", Usage: "Prefix `N` version byte and append a checksum"},
		&cli.BoolFlag{Name: "hex", Usage: "Read INPUT as hex"},
	}
}

func decodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "check", Usage: "Verify and strip a checksum"},
		&cli.BoolFlag{Name: "version", Usage: "Verify a checksum and split the version byte"},
		&cli.StringFlag{Name: "expect", Usage: "Like --version and require version `N`"},
		&cli.BoolFlag{Name: "hex", Usage: "Print decoded bytes as hex"},
	}
}

func encode(c *cli.Context, cfg configuration.Configuration) error {
	cd, err := codec.ForName(cfg.Codec.DefaultAlphabet)
	if err != nil {
		return err
	}
	arg, err := readArgument(c.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}
	data, err := inputBytes(arg, c.Bool("hex"))
	if err != nil {
		return err
	}

	switch {
	case c.IsSet("version"):
		v, err := parseVersion(c.String("version"))
		if err != nil {
			return err
		}
		fmt.Println(cd.EncodeVersioned(v, data))
	case c.Bool("check"):
		fmt.Println(cd.EncodeChecked(data))
	default:
		fmt.Println(cd.Encode(data))
	}
	return nil
}

func decode(c *cli.Context, cfg configuration.Configuration) error {
	cd, err := codec.ForName(cfg.Codec.DefaultAlphabet)
	if err != nil {
		return err
	}
	text, err := readArgument(c.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}

	var data []byte
	switch {
	case c.IsSet("expect"):
		v, err := parseVersion(c.String("expect"))
		if err != nil {
			return err
		}
		if data, err = cd.DecodeVersionedExpect(text, v); err != nil {
			return err
		}
	case c.Bool("version"):
		var v byte
		if v, data, err = cd.DecodeVersioned(text); err != nil {
			return err
		}
		pterm.Info.Printfln("version %d", v)
	case c.Bool("check"):
		if data, err = cd.DecodeChecked(text); err != nil {
			return err
		}
	default:
		if data, err = cd.Decode(text); err != nil {
			return err
		}
	}

	fmt.Println(outputBytes(data, c.Bool("hex")))
	return nil
}

func listAlphabets(cfg configuration.Configuration) error {
	rows := [][]string{{"Name", "Symbols", "Default"}}
	for _, v := range alphabet.Variants() {
		a, err := alphabet.Get(v)
		if err != nil {
			return err
		}
		def := ""
		if v.String() == cfg.Codec.DefaultAlphabet {
			def = "*"
		}
		rows = append(rows, []string{v.String(), a.String(), def})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func validate(text, alphabetName string) error {
	reports, err := invalidByAlphabet(text, alphabetName)
	if err != nil {
		return err
	}
	for _, r := range reports {
		if len(r.invalid) == 0 {
			pterm.Success.Printfln("%s: %s", r.name, formatInvalid(r.invalid))
			continue
		}
		pterm.Warning.Printfln("%s: %s", r.name, formatInvalid(r.invalid))
	}
	return nil
}

func serve(cfg configuration.Configuration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	go func() {
		<-c
		cancel()
	}()

	callbackOnErr := func(err error) {
		fmt.Println("error with logger: ", err)
	}

	callbackOnFatal := func(err error) {
		panic(fmt.Sprintf("error with logger: %s", err))
	}

	log := logging.New(callbackOnErr, callbackOnFatal, stdoutwriter.Logger{})
	defer log.Flush()

	return runServices(ctx, cancel, cfg, log)
}

// runServices runs the telemetry endpoint and the codec server until the context is canceled
// or one of them fails, a failure of either one stops the other.
func runServices(ctx context.Context, cancel context.CancelFunc, cfg configuration.Configuration, log logger.Logger) error {
	variant, err := cfg.DefaultVariant()
	if err != nil {
		return err
	}

	tele := telemetry.New()
	teleErr := make(chan error, 1)
	go func() {
		err := telemetry.Run(ctx, cfg.Telemetry, tele)
		if err != nil {
			log.Error(err.Error())
		}
		teleErr <- err
		cancel()
	}()

	log.Info(fmt.Sprintf("codec server listening on port %d, default alphabet %s", cfg.Server.Port, variant))
	serverErr := codecserver.Run(ctx, cfg.Server, variant, log, tele)
	if serverErr != nil {
		log.Error(serverErr.Error())
	}
	cancel()

	if err := errors.Join(serverErr, <-teleErr); err != nil {
		return err
	}
	log.Info("codec server stopped")
	return nil
}

func remoteEncode(c *cli.Context, cfg configuration.Configuration, alphabetName string) error {
	arg, err := readArgument(c.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}
	data, err := inputBytes(arg, c.Bool("hex"))
	if err != nil {
		return err
	}

	req := codecserver.EncodeRequest{Data: data, Alphabet: alphabetName, Mode: codecserver.ModePlain}
	switch {
	case c.IsSet("version"):
		v, err := parseVersion(c.String("version"))
		if err != nil {
			return err
		}
		req.Mode, req.Version = codecserver.ModeVersion, &v
	case c.Bool("check"):
		req.Mode = codecserver.ModeCheck
	}

	client := codecclient.New(cfg.Client)
	if err := client.ValidateApiVersion(); err != nil {
		return err
	}
	resp, err := client.Encode(req)
	if err != nil {
		return err
	}
	fmt.Println(resp.Encoded)
	return nil
}

func remoteDecode(c *cli.Context, cfg configuration.Configuration, alphabetName string) error {
	text, err := readArgument(c.Args().Slice(), os.Stdin)
	if err != nil {
		return err
	}

	req := codecserver.DecodeRequest{Encoded: text, Alphabet: alphabetName, Mode: codecserver.ModePlain}
	switch {
	case c.IsSet("expect"):
		v, err := parseVersion(c.String("expect"))
		if err != nil {
			return err
		}
		req.Mode, req.Version = codecserver.ModeVersion, &v
	case c.Bool("version"):
		req.Mode = codecserver.ModeVersion
	case c.Bool("check"):
		req.Mode = codecserver.ModeCheck
	}

	client := codecclient.New(cfg.Client)
	if err := client.ValidateApiVersion(); err != nil {
		return err
	}
	resp, err := client.Decode(req)
	if err != nil {
		return err
	}
	if resp.Version != nil && !c.IsSet("expect") {
		pterm.Info.Printfln("version %d", *resp.Version)
	}
	fmt.Println(outputBytes(resp.Data, c.Bool("hex")))
	return nil
}
