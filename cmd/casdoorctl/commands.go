package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	casdoor "github.com/casdoor/casdoor-go-client"
	"github.com/casdoor/casdoor-go-client/internal/oidc"
	"github.com/casdoor/casdoor-go-client/jwks"
	"github.com/casdoor/casdoor-go-client/service"
	"github.com/casdoor/casdoor-go-client/token"
)

var queryFlag = &cli.StringSliceFlag{
	Name:    "query",
	Aliases: []string{"q"},
	Usage:   "query parameter as key=value",
}

var getCmd = &cli.Command{
	Name:      "get",
	Usage:     "GET an action",
	ArgsUsage: "<action> [key=value...]",
	Action: func(cctx *cli.Context) error {
		action, query, err := actionAndParams(cctx, cctx.Args().Tail())
		if err != nil {
			return err
		}
		c, err := newClient(cctx)
		if err != nil {
			return err
		}

		resp, err := casdoor.Get[json.RawMessage, json.RawMessage](cctx.Context, c, action, query)
		if err != nil {
			return err
		}
		return printResponse(cctx, resp)
	},
}

var postFormCmd = &cli.Command{
	Name:      "post-form",
	Usage:     "POST form fields to an action",
	ArgsUsage: "<action> [field=value...]",
	Flags:     []cli.Flag{queryFlag},
	Action: func(cctx *cli.Context) error {
		action, query, err := actionAndParams(cctx, cctx.StringSlice("query"))
		if err != nil {
			return err
		}
		form, err := parseParams(cctx.Args().Tail())
		if err != nil {
			return err
		}
		c, err := newClient(cctx)
		if err != nil {
			return err
		}

		resp, err := casdoor.PostForm[json.RawMessage, json.RawMessage](cctx.Context, c, action, query, form)
		if err != nil {
			return err
		}
		return printResponse(cctx, resp)
	},
}

var postRawCmd = &cli.Command{
	Name:      "post-raw",
	Usage:     "POST a raw body to an action",
	ArgsUsage: "<action>",
	Flags: []cli.Flag{
		queryFlag,
		&cli.StringFlag{Name: "body", Usage: "request body"},
		&cli.PathFlag{Name: "body-file", Usage: "read the request body from a file"},
	},
	Action: func(cctx *cli.Context) error {
		action, query, err := actionAndParams(cctx, cctx.StringSlice("query"))
		if err != nil {
			return err
		}

		body := cctx.String("body")
		if path := cctx.Path("body-file"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("could not read body: %w", err)
			}
			body = string(data)
		}

		c, err := newClient(cctx)
		if err != nil {
			return err
		}

		resp, err := casdoor.PostRawBody[json.RawMessage, json.RawMessage](cctx.Context, c, action, query, body)
		if err != nil {
			return err
		}
		return printResponse(cctx, resp)
	},
}

var postFileCmd = &cli.Command{
	Name:      "post-file",
	Usage:     "upload a file to an action",
	ArgsUsage: "<action> <file>",
	Flags:     []cli.Flag{queryFlag},
	Action: func(cctx *cli.Context) error {
		action, query, err := actionAndParams(cctx, cctx.StringSlice("query"))
		if err != nil {
			return err
		}
		filePath := cctx.Args().Get(1)
		if filePath == "" {
			return cli.Exit("need to provide a file as the second argument", 2)
		}
		c, err := newClient(cctx)
		if err != nil {
			return err
		}

		resp, err := casdoor.PostFile[json.RawMessage, json.RawMessage](cctx.Context, c, action, query, filePath)
		if err != nil {
			return err
		}
		return printResponse(cctx, resp)
	},
}

var getUserCmd = &cli.Command{
	Name:      "get-user",
	Usage:     "fetch a user of the organization",
	ArgsUsage: "<name>",
	Action: func(cctx *cli.Context) error {
		name := cctx.Args().First()
		if name == "" {
			return cli.Exit("need to provide a user name as an argument", 2)
		}
		c, err := newClient(cctx)
		if err != nil {
			return err
		}

		user, err := service.NewUserService(c).GetUser(cctx.Context, name)
		if err != nil {
			return err
		}
		return printJSON(cctx, user)
	},
}

var parseTokenCmd = &cli.Command{
	Name:      "parse-token",
	Usage:     "verify an access token and print its claims",
	ArgsUsage: "<token>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "jwks", Usage: "verify with the server's JWKS instead of the configured certificate"},
	},
	Action: func(cctx *cli.Context) error {
		raw := cctx.Args().First()
		if raw == "" {
			return cli.Exit("need to provide a token as an argument", 2)
		}
		cfg, err := loadConfig(cctx)
		if err != nil {
			return err
		}

		var v *token.Validator
		if cctx.Bool("jwks") {
			provider, err := jwks.NewProvider(jwks.WithEndpoint(cfg.Endpoint))
			if err != nil {
				return err
			}
			v, err = token.New(token.WithKeyFunc(provider.KeyFunc), token.WithAudience(cfg.ClientID))
			if err != nil {
				return err
			}
		} else {
			v, err = token.NewFromConfig(cfg)
			if err != nil {
				return err
			}
		}

		claims, err := v.ParseToken(cctx.Context, raw)
		if err != nil {
			return err
		}
		return printJSON(cctx, claims)
	},
}

var discoverCmd = &cli.Command{
	Name:  "discover",
	Usage: "print the server's OpenID Connect discovery document",
	Action: func(cctx *cli.Context) error {
		endpoint := flagOrEnv(cctx, "endpoint", "CASDOOR_ENDPOINT")
		if endpoint == "" {
			return cli.Exit("need --endpoint", 2)
		}

		configuration, err := oidc.Discover(cctx.Context, nil, endpoint)
		if err != nil {
			return err
		}
		return printJSON(cctx, configuration)
	},
}

func actionAndParams(cctx *cli.Context, pairs []string) (string, map[string]string, error) {
	action := cctx.Args().First()
	if action == "" {
		return "", nil, cli.Exit("need to provide an action as the first argument", 2)
	}
	params, err := parseParams(pairs)
	if err != nil {
		return "", nil, err
	}
	return action, params, nil
}

type output struct {
	Msg   string          `json:"msg,omitempty"`
	Data  json.RawMessage `json:"data"`
	Data2 json.RawMessage `json:"data2"`
}

func printResponse(cctx *cli.Context, resp *casdoor.Response[json.RawMessage, json.RawMessage]) error {
	return printJSON(cctx, output{Msg: resp.Msg, Data: resp.Data, Data2: resp.Data2})
}

func printJSON(cctx *cli.Context, v any) error {
	enc := json.NewEncoder(cctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
