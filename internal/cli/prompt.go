package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readLine читает строку без перевода строки
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptString спрашивает непустое значение
func promptString(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	for {
		fmt.Fprintf(out, "%s: ", label)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// promptPassword читает пароль без эха, если stdin терминал
func promptPassword(in io.Reader, reader *bufio.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		if len(data) == 0 {
			return "", fmt.Errorf("missing input for Password")
		}
		return string(data), nil
	}
	return promptString(reader, out, "Password")
}

// promptChoice выводит нумерованный список. Принимает номер или точное имя.
func promptChoice(reader *bufio.Reader, out io.Writer, label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options for %s", label)
	}
	fmt.Fprintf(out, "%s:\n", label)
	for i, opt := range options {
		fmt.Fprintf(out, "  %2d) %s\n", i+1, opt)
	}
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return "", err
		}
		line = strings.TrimSpace(line)
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, opt := range options {
			if strings.EqualFold(opt, line) {
				return opt, nil
			}
		}
		if err == io.EOF {
			return "", fmt.Errorf("missing choice for %s", label)
		}
		if line != "" {
			fmt.Fprintf(out, "Unknown option %q, enter 1-%d\n", line, len(options))
		}
	}
}
