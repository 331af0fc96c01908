package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	casdoor "github.com/casdoor/casdoor-go-client"
	"github.com/casdoor/casdoor-go-client/config"
)

func newApp() *cli.App {
	app := &cli.App{
		Name:  "casdoorctl",
		Usage: "call the Casdoor API with application credentials",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "Casdoor server URL",
				EnvVars: []string{"CASDOOR_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "client-id",
				Usage:   "application client id",
				EnvVars: []string{"CASDOOR_CLIENT_ID"},
			},
			&cli.StringFlag{
				Name:    "client-secret",
				Usage:   "application client secret",
				EnvVars: []string{"CASDOOR_CLIENT_SECRET"},
			},
			&cli.StringFlag{
				Name:    "certificate",
				Usage:   "application certificate, as PEM text or a path to a PEM file",
				EnvVars: []string{"CASDOOR_CERTIFICATE"},
			},
			&cli.StringFlag{
				Name:    "organization",
				Usage:   "organization name used by the user commands",
				EnvVars: []string{"CASDOOR_ORGANIZATION_NAME"},
			},
			&cli.StringFlag{
				Name:    "application",
				Usage:   "application name",
				EnvVars: []string{"CASDOOR_APPLICATION_NAME"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv file(s) to load CASDOOR_* variables from",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log requests and responses",
			},
		},
		Commands: []*cli.Command{
			getCmd,
			postFormCmd,
			postRawCmd,
			postFileCmd,
			getUserCmd,
			parseTokenCmd,
			discoverCmd,
		},
	}
	return app
}

func logger(cctx *cli.Context) zerolog.Logger {
	level := zerolog.InfoLevel
	if cctx.Bool("debug") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cctx.App.ErrWriter, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig builds the configuration from flags, falling back to the
// environment after loading any --env-file.
func loadConfig(cctx *cli.Context) (config.Config, error) {
	if files := cctx.StringSlice("env-file"); len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return config.Config{}, fmt.Errorf("could not load env files: %w", err)
		}
	}

	certificate, err := readCertificate(flagOrEnv(cctx, "certificate", "CASDOOR_CERTIFICATE"))
	if err != nil {
		return config.Config{}, err
	}

	return config.New(
		flagOrEnv(cctx, "endpoint", "CASDOOR_ENDPOINT"),
		flagOrEnv(cctx, "client-id", "CASDOOR_CLIENT_ID"),
		flagOrEnv(cctx, "client-secret", "CASDOOR_CLIENT_SECRET"),
		config.WithCertificate(certificate),
		config.WithOrganization(flagOrEnv(cctx, "organization", "CASDOOR_ORGANIZATION_NAME")),
		config.WithApplication(flagOrEnv(cctx, "application", "CASDOOR_APPLICATION_NAME")),
	)
}

// flagOrEnv reads name, or env when the flag is unset. Variables loaded from
// --env-file are not visible to the flag parser, which already ran.
func flagOrEnv(cctx *cli.Context, name, env string) string {
	if v := cctx.String(name); v != "" {
		return v
	}
	return os.Getenv(env)
}

func readCertificate(value string) (string, error) {
	if value == "" || strings.HasPrefix(strings.TrimSpace(value), "-----BEGIN") {
		return value, nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("could not read certificate: %w", err)
	}
	return string(data), nil
}

func newClient(cctx *cli.Context) (*casdoor.Client, error) {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return nil, err
	}

	log := logger(cctx)
	return casdoor.New(cfg,
		casdoor.WithLogger(casdoor.NewZerologLogger(log)),
		casdoor.WithDebug(cctx.Bool("debug")),
	)
}

// parseParams turns key=value arguments into a parameter map.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		params[key] = value
	}
	return params, nil
}
