package main

import (
	"bufio"
	_ "embed" // words.txt
	"fmt"
	"io"
	"strings"
)

//go:embed embed/words.txt
var embeddedWords string

// readWords reads the distinct words, one per line.  Blank lines are skipped.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if len(w) == 0 {
			continue
		}
		k := strings.ToLower(w)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}
	return words, nil
}
