package meld

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row is the part of a manifest row the pipeline uses.
type Row struct {
	// Line is the 1-based line of the row in the manifest.
	Line        int
	Speaker     string
	Emotion     string
	DialogueID  int
	UtteranceID int
}

const (
	columnSpeaker     = "Speaker"
	columnEmotion     = "Emotion"
	columnDialogueID  = "Dialogue_ID"
	columnUtteranceID = "Utterance_ID"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadManifest parses the CSV manifest at path.
func ReadManifest(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ParseManifest reads manifest rows. Columns are located by header name so
// extra or reordered columns are fine. Input that is not valid UTF-8 is read
// as Windows-1252, which is how the released manifests encode apostrophes.
// The choice covers the whole manifest: a single invalid byte switches every
// row to Windows-1252, so valid multi-byte UTF-8 elsewhere in that file is
// decoded byte by byte.
func ParseManifest(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseManifest(data)
}

func parseManifest(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		row, err := columns.row(record, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type columnIndex struct {
	speaker, emotion, dialogue, utterance int
}

func locateColumns(header []string) (columnIndex, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	var cols columnIndex
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{columnSpeaker, &cols.speaker},
		{columnEmotion, &cols.emotion},
		{columnDialogueID, &cols.dialogue},
		{columnUtteranceID, &cols.utterance},
	} {
		i, ok := index[want.name]
		if !ok {
			return columnIndex{}, fmt.Errorf("manifest header lacks %q column", want.name)
		}
		*want.dst = i
	}
	return cols, nil
}

func (c columnIndex) row(record []string, line int) (Row, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	dialogue, err := strconv.Atoi(field(c.dialogue))
	if err != nil {
		return Row{}, fmt.Errorf("line %d: %s %q is not a number", line, columnDialogueID, field(c.dialogue))
	}
	utterance, err := strconv.Atoi(field(c.utterance))
	if err != nil {
		return Row{}, fmt.Errorf("line %d: %s %q is not a number", line, columnUtteranceID, field(c.utterance))
	}
	return Row{
		Line:        line,
		Speaker:     field(c.speaker),
		Emotion:     field(c.emotion),
		DialogueID:  dialogue,
		UtteranceID: utterance,
	}, nil
}
