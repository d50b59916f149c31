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

type PasswordReader interface {
	ReadPassword(label string) (string, error)
}

// PasswordPrompt reads passwords without echo from a terminal. Piped input
// is read line by line so scripts can provide the password on stdin.
type PasswordPrompt struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

func NewPasswordPrompt(in *os.File, out io.Writer) *PasswordPrompt {
	return &PasswordPrompt{in: in, out: out}
}

func (prompt *PasswordPrompt) ReadPassword(label string) (string, error) {
	if prompt.in == nil {
		return "", errors.New("stdin unavailable")
	}
	fmt.Fprint(prompt.out, label)

	fd := int(prompt.in.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt.out)
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	if prompt.reader == nil {
		prompt.reader = bufio.NewReader(prompt.in)
	}
	line, err := prompt.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
