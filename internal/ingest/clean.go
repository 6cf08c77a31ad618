package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const maxBinaryCheckBytes = 512

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Product exports from spreadsheets routinely carry Windows-1252 smart
// punctuation and non-breaking spaces; normalize them so denormalized
// taxonomy text compares cleanly.
var charReplacementMap = map[string]string{
	"‘": "'", "’": "'", "“": "\"",
	"”": "\"", "–": "-", "—": "--",
	"…": "...", " ": " ", "": "'",
	"": "'", "": "\"", "": "\"",
	"": "-", "": "--",
}

// IsLikelyBinary reports whether the file's leading bytes contain a NUL.
func IsLikelyBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, maxBinaryCheckBytes)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	return bytes.Contains(buffer[:n], []byte{0}), nil
}

// CleanFileContent strips a UTF-8 BOM, repairs invalid UTF-8 and normalizes
// smart punctuation across the whole file.
func CleanFileContent(fileContentBytes []byte, src string) (string, error) {
	fileContentBytes = bytes.TrimPrefix(fileContentBytes, utf8BOM)

	if !utf8.Valid(fileContentBytes) {
		log.Warnf("%s contains invalid UTF-8, replacing invalid chars", src)
		fileContentBytes = bytes.ToValidUTF8(fileContentBytes, []byte(string(utf8.RuneError)))
	}

	str := string(fileContentBytes)
	for bad, good := range charReplacementMap {
		str = strings.ReplaceAll(str, bad, good)
	}

	if !utf8.ValidString(str) {
		return "", fmt.Errorf("invalid UTF-8 after replacements: %s", src)
	}
	return str, nil
}

// CleanName normalizes a single field value: smart punctuation replaced,
// whitespace runs collapsed, surrounding whitespace trimmed.
func CleanName(s string) string {
	for bad, good := range charReplacementMap {
		s = strings.ReplaceAll(s, bad, good)
	}
	return strings.Join(strings.Fields(s), " ")
}
