package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompt lee la contraseña sin eco si in es una terminal; si no, lee una línea.
func TerminalPrompt(in *os.File, out io.Writer) PasswordPrompt {
	return func(label string) (string, error) {
		fmt.Fprint(out, label)
		fd := int(in.Fd())
		if term.IsTerminal(fd) {
			raw, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("leer contraseña: %w", err)
			}
			return string(raw), nil
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("leer contraseña: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
