package cli

import (
	"context"
	"flag"
	"fmt"
)

// promptEmail and promptPassword are swapped in tests.
var (
	promptEmail    = PromptEmail
	promptPassword = PromptPassword
)

type credentialsCall func(ctx context.Context, email, password string) (int, string, error)

// Signup registers a new account. See run for the exit codes.
func (a *App) Signup(ctx context.Context, args []string) int {
	return a.run(ctx, "signup", args, a.client.Signup)
}

// Login checks credentials against the server. See run for the exit codes.
func (a *App) Login(ctx context.Context, args []string) int {
	return a.run(ctx, "login", args, a.client.Login)
}

// run collects credentials from flags or prompts, performs call and prints
// the server reply. It returns 0 on a 2xx reply, 1 on any other reply or
// failure and 2 on bad arguments.
func (a *App) run(ctx context.Context, name string, args []string, call credentialsCall) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	creds, err := a.prompt(*email, *password)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return 1
	}

	status, msg, err := call(ctx, creds.email, creds.password)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return 1
	}

	fmt.Fprintln(a.out, msg)
	if status < 200 || status > 299 {
		return 1
	}
	return 0
}

type credentials struct {
	email    string
	password string
}

func (a *App) prompt(email, password string) (credentials, error) {
	var err error
	if email == "" {
		email, err = promptEmail(a.reader, a.out)
		if err != nil {
			return credentials{}, err
		}
	}

	if password == "" {
		password, err = promptPassword(a.out)
		if err != nil {
			return credentials{}, err
		}
	}

	return credentials{email: email, password: password}, nil
}
