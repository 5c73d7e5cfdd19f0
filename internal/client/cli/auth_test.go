package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/flatauth/internal/client/client"
)

func stubInputs(t *testing.T, email, password string) *int {
	t.Helper()
	prompts := 0
	origEmail, origPassword := promptEmail, promptPassword
	promptEmail = func(_ *bufio.Reader, _ io.Writer) (string, error) {
		prompts++
		return email, nil
	}
	promptPassword = func(_ io.Writer) (string, error) {
		prompts++
		return password, nil
	}
	t.Cleanup(func() {
		promptEmail = origEmail
		promptPassword = origPassword
	})
	return &prompts
}

type fakeClient struct {
	gotCall     string
	gotEmail    string
	gotPassword string

	status int
	msg    string
	err    error
}

func (f *fakeClient) record(call, email, password string) (int, string, error) {
	f.gotCall, f.gotEmail, f.gotPassword = call, email, password
	return f.status, f.msg, f.err
}

func (f *fakeClient) Signup(_ context.Context, email, password string) (int, string, error) {
	return f.record("signup", email, password)
}

func (f *fakeClient) Login(_ context.Context, email, password string) (int, string, error) {
	return f.record("login", email, password)
}

func newTestApp(fc *fakeClient) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{client: fc, reader: bufio.NewReader(strings.NewReader("")), out: &out}, &out
}

func TestRun_SignupWithFlags(t *testing.T) {
	prompts := stubInputs(t, "unused", "")
	fc := &fakeClient{status: http.StatusOK, msg: "Signup successful!"}
	app, out := newTestApp(fc)

	code := app.Run(context.Background(), []string{"-a", "http://h:1", "signup", "-e", "a@b.com", "-p", "p"})

	assert.Equal(t, 0, code)
	assert.Equal(t, "signup", fc.gotCall)
	assert.Equal(t, "a@b.com", fc.gotEmail)
	assert.Equal(t, "p", fc.gotPassword)
	assert.Equal(t, "Signup successful!\n", out.String())
	assert.Zero(t, *prompts)
}

func TestRun_LoginPromptsForMissingValues(t *testing.T) {
	prompts := stubInputs(t, "a@b.com", "s3cret")
	fc := &fakeClient{status: http.StatusOK, msg: "Login successful!"}
	app, _ := newTestApp(fc)

	code := app.Run(context.Background(), []string{"login"})

	assert.Equal(t, 0, code)
	assert.Equal(t, "login", fc.gotCall)
	assert.Equal(t, "a@b.com", fc.gotEmail)
	assert.Equal(t, "s3cret", fc.gotPassword)
	assert.Equal(t, 2, *prompts)
}

func TestRun_Non2xxIsFailure(t *testing.T) {
	stubInputs(t, "", "")
	fc := &fakeClient{status: http.StatusUnauthorized, msg: "Invalid credentials. User not found."}
	app, out := newTestApp(fc)

	code := app.Run(context.Background(), []string{"login", "-e", "x@y.com", "-p", "p"})

	assert.Equal(t, 1, code)
	assert.Equal(t, "Invalid credentials. User not found.\n", out.String())
}

func TestRun_TransportError(t *testing.T) {
	stubInputs(t, "", "")
	fc := &fakeClient{err: fmt.Errorf("%w: connection refused", client.ErrUnavailable)}
	app, out := newTestApp(fc)

	code := app.Run(context.Background(), []string{"signup", "-e", "a@b.com", "-p", "p"})

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "server unavailable")
}

func TestRun_PromptError(t *testing.T) {
	origPassword := promptPassword
	t.Cleanup(func() { promptPassword = origPassword })
	promptPassword = func(_ io.Writer) (string, error) { return "", errors.New("no tty") }

	fc := &fakeClient{}
	app, out := newTestApp(fc)

	code := app.Run(context.Background(), []string{"signup", "-e", "a@b.com"})

	assert.Equal(t, 1, code)
	assert.Empty(t, fc.gotCall, "nothing is sent")
	assert.Contains(t, out.String(), "no tty")
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, 2},
		{"only global flags", []string{"-a", "http://h:1"}, 2},
		{"unknown command", []string{"logout"}, 2},
		{"bad global flag", []string{"-z"}, 2},
		{"bad subcommand flag", []string{"login", "-z"}, 2},
		{"help", []string{"help"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(&fakeClient{})
			require.Equal(t, tt.want, app.Run(context.Background(), tt.args))
		})
	}
}
