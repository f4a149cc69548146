package parser

import (
	"bufio"
	"io"
)

// TextParser handles plain text dumps of confirmations.
type TextParser struct{}

func (p *TextParser) Lines(r io.Reader, filename string) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line == "\r" {
			continue
		}
		if line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
