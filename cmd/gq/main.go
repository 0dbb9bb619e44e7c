// Command gq sends a GraphQL document to a server and prints the data member of the
// response as JSON.
//
//	gq --endpoint https://api.example.com/graphql --var id=1 query.graphql
//	echo 'query { viewer { login } }' | gq -H "Authorization=Bearer $TOKEN" -
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/getoutreach/gobox/pkg/events"
	"github.com/getoutreach/gobox/pkg/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/getoutreach/gq"
)

func main() {
	ctx := context.Background()

	// .env is optional, a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn(ctx, "load .env file", events.NewErrorInfo(err))
	}

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		var errs gq.Errors
		if errors.As(err, &errs) {
			printErrors(os.Stderr, errs)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// newApp returns the command line application writing results to out.
func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "gq",
		Usage:     "send a GraphQL document and print the resulting data",
		ArgsUsage: "<document-file|->",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "endpoint",
				Aliases: []string{"e"},
				Usage:   "GraphQL endpoint URL",
				EnvVars: []string{"GQ_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with endpoint, headers, mode, and options",
				EnvVars: []string{"GQ_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "request header as NAME=VALUE, repeatable",
			},
			&cli.StringSliceFlag{
				Name:  "var",
				Usage: "string variable as NAME=VALUE, repeatable",
			},
			&cli.StringFlag{
				Name:  "vars-json",
				Usage: "variables as a JSON object",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "request mode marker",
			},
			&cli.StringFlag{
				Name:  "method",
				Usage: "HTTP method",
				Value: "POST",
			},
			&cli.StringFlag{
				Name:  "transport",
				Usage: "transport to use: http or resty",
				Value: "http",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "pretty-print the JSON output",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, out)
		},
	}
}

// run executes the document named by the first argument.
func run(c *cli.Context, out io.Writer) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one document file, or - for stdin", 2)
	}

	document, err := readDocument(c.Args().First(), c.App.Reader)
	if err != nil {
		return err
	}

	fc, err := loadFileConfig(c.String("config"))
	if err != nil {
		return err
	}

	header, err := parsePairs(c.StringSlice("header"))
	if err != nil {
		return err
	}

	variables, err := buildVariables(c.String("vars-json"), c.StringSlice("var"))
	if err != nil {
		return err
	}

	var transport gq.Transport
	switch c.String("transport") {
	case "http":
		transport = &gq.HTTPTransport{}
	case "resty":
		transport = gq.NewRestyTransport(nil)
	default:
		return errors.Errorf("unknown transport %q", c.String("transport"))
	}

	endpoint, rc := fc.merge(c.String("endpoint"), c.String("mode"), header)
	client := gq.NewClient(endpoint, gq.ClientOptions{
		RequestConfig: rc,
		Transport:     transport,
	})

	var data json.RawMessage
	if err := client.Send(c.Context, document, gq.CallOptions{
		Variables: variables,
		Method:    c.String("method"),
	}, &data); err != nil {
		return err
	}

	return writeData(out, data, c.Bool("pretty"))
}

// readDocument reads the document from path, or from stdin when path is "-".
func readDocument(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "read document from stdin")
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read document")
	}
	return string(b), nil
}

// writeData writes data to out, indented if pretty is set.
func writeData(out io.Writer, data json.RawMessage, pretty bool) error {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	if pretty {
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return errors.Wrap(err, "format data")
		}
		data = b
	}

	_, err := fmt.Fprintln(out, string(data))
	return err
}

// printErrors writes one line per GraphQL error, with its locations.
func printErrors(w io.Writer, errs gq.Errors) {
	for i := range errs {
		fmt.Fprintf(w, "error: %s", errs[i].Message)
		for _, l := range errs[i].Locations {
			fmt.Fprintf(w, " (line %d, column %d)", l.Line, l.Column)
		}
		fmt.Fprintln(w)
	}
}
