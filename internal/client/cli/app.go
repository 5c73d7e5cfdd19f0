package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/flatauth/internal/client/client"
	"github.com/dmitrijs2005/flatauth/internal/client/config"
)

const usage = "usage: flatauth-cli [-a url] [-t seconds] signup|login [-e email] [-p password]"

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run executes the command found in args and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	rest, err := skipGlobalFlags(args)
	if err != nil || len(rest) == 0 {
		fmt.Fprintln(a.out, usage)
		return 2
	}

	switch rest[0] {
	case "signup":
		return a.Signup(ctx, rest[1:])
	case "login":
		return a.Login(ctx, rest[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return 0
	default:
		fmt.Fprintln(a.out, "Unknown command:", rest[0])
		fmt.Fprintln(a.out, usage)
		return 2
	}
}

// skipGlobalFlags drops the flags owned by the config package and returns
// the command with its own arguments.
func skipGlobalFlags(args []string) ([]string, error) {
	fs := flag.NewFlagSet("flatauth-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("a", "", "")
	fs.Int("t", 0, "")
	fs.String("c", "", "")
	fs.String("config", "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
