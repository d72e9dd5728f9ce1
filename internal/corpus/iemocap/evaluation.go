package iemocap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseEvaluation reads an EmoEvaluation file and returns utterance ID to
// emotion code. Only segment header lines are used:
//
//	[6.2901 - 8.2357]	Ses01F_impro01_F000	neu	[2.5000, 2.5000, 2.5000]
//
// Annotator detail lines and the file's column header are ignored.
func ParseEvaluation(r io.Reader) (map[string]string, error) {
	labels := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "[") {
			continue
		}
		fields := strings.Fields(line)
		// "[start", "-", "end]", utterance, code, ...
		if len(fields) < 5 {
			continue
		}
		labels[fields[3]] = fields[4]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan evaluation: %w", err)
	}
	return labels, nil
}

// ReadEvaluation parses the EmoEvaluation file at path.
func ReadEvaluation(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	labels, err := ParseEvaluation(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, nil
}
