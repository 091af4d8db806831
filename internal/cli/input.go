package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is swapped in tests so nothing touches the terminal.
var readPassword = term.ReadPassword

// promptLine prints prompt and reads one trimmed line. A last line without
// a trailing newline is accepted.
func (a *App) promptLine(prompt string) (string, error) {
	if _, err := fmt.Fprintf(a.out, "%s: ", prompt); err != nil {
		return "", err
	}

	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo. The caller clears the returned slice.
func (a *App) promptSecret(prompt string) ([]byte, error) {
	if _, err := fmt.Fprintf(a.out, "%s: ", prompt); err != nil {
		return nil, err
	}

	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	return secret, nil
}

// promptNewSecret asks twice and fails with ErrSecretMismatch when the two
// entries differ.
func (a *App) promptNewSecret(prompt string) ([]byte, error) {
	first, err := a.promptSecret(prompt)
	if err != nil {
		return nil, err
	}

	second, err := a.promptSecret("Repeat " + strings.ToLower(prompt))
	if err != nil {
		clear(first)
		return nil, err
	}
	defer clear(second)

	if string(first) != string(second) {
		clear(first)
		return nil, ErrSecretMismatch
	}
	return first, nil
}
