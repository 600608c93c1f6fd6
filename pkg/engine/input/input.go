package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdinReader *bufio.Reader

// GetInput reads a line of input from stdin without raw mode.
func GetInput() (string, error) {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// readByte reads a single byte from stdin in raw mode
func readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return buf[0], err
}

// tryReadArrowKey attempts to read an arrow key escape sequence.
// Returns the arrow direction string if successful, empty string otherwise.
func tryReadArrowKey(firstByte byte) string {
	if firstByte != 0x1b {
		return ""
	}

	b2, err := readByte()
	if err != nil {
		return ""
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 == '[' || b2 == 'O' {
		b3, err := readByte()
		if err != nil {
			return ""
		}

		switch b3 {
		case 'A':
			return "arrow_up"
		case 'B':
			return "arrow_down"
		case 'C':
			return "arrow_right"
		case 'D':
			return "arrow_left"
		}
	}
	return ""
}

// ReadLine reads one line in raw mode. Arrow keys return their name at once,
// Ctrl+C returns "ctrl_c". When stdin is not a terminal it falls back to a
// plain buffered read.
func ReadLine() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return GetInput()
	}

	// Reset the buffered reader to avoid conflicts with raw mode
	stdinReader = nil

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return GetInput()
	}
	defer term.Restore(fd, oldState)

	b1, err := readByte()
	if err != nil {
		return "", err
	}

	if arrowKey := tryReadArrowKey(b1); arrowKey != "" {
		fmt.Print("\r\n")
		return arrowKey, nil
	}

	var input []byte
	b := b1
	if b1 == 0x1b {
		// Not an arrow key; the escape sequence is already consumed.
		if b, err = readByte(); err != nil {
			return "", err
		}
	}
	for {
		switch {
		case b == 3:
			fmt.Print("\r\n")
			return "ctrl_c", nil
		case b == '\n' || b == '\r':
			fmt.Print("\r\n")
			return string(input), nil
		case b == 0x1b:
			// Arrow keys during text entry are discarded.
			tryReadArrowKey(b)
		case b == 127 || b == 8:
			if len(input) > 0 {
				input = input[:len(input)-1]
				fmt.Print("\b \b")
			}
		case b >= 32 && b < 127:
			input = append(input, b)
			fmt.Print(string(b))
		}

		b, err = readByte()
		if err != nil {
			return string(input), err
		}
	}
}
