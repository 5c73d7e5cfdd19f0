package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	emailPrompt    = "Email: "
	passwordPrompt = "Password: "
)

var (
	errEmptyEmail    = errors.New("email must not be empty")
	errEmptyPassword = errors.New("password must not be empty")
)

// readPassword is swapped in tests so no terminal is needed.
var readPassword = term.ReadPassword

// PromptEmail asks for the account email on w and reads one line from reader.
// Surrounding whitespace is dropped; a final line without newline is accepted.
func PromptEmail(reader *bufio.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, emailPrompt)

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read email: %w", err)
	}

	email := strings.TrimSpace(line)
	if email == "" {
		return "", errEmptyEmail
	}
	return email, nil
}

// PromptPassword asks for the password on w and reads it from the terminal
// without echo. The password is taken verbatim, spaces included.
func PromptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, passwordPrompt)

	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if len(pw) == 0 {
		return "", errEmptyPassword
	}
	return string(pw), nil
}
