// Package deck loads the slides a carousel presents.
//
// A deck is either a single file split on lines that contain exactly "---",
// or a directory whose .md, .markdown and .txt files each hold one slide, in
// lexical order.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrEmpty is returned when a deck source has no non-blank slides.
var ErrEmpty = errors.New("deck has no slides")

const separator = "---"

var slideExts = map[string]bool{".md": true, ".markdown": true, ".txt": true}

// Slide is one item of the carousel.
type Slide struct {
	Title  string
	Body   string
	Source string
}

// Deck is an ordered, immutable collection of slides.
type Deck struct {
	Path   string
	Slides []Slide
}

// Len returns the number of slides.
func (d Deck) Len() int {
	return len(d.Slides)
}

// Titles returns slide titles in order.
func (d Deck) Titles() []string {
	out := make([]string, len(d.Slides))
	for i, s := range d.Slides {
		out[i] = s.Title
	}
	return out
}

// Load reads the deck at path.
func Load(path string) (Deck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Deck{}, fmt.Errorf("stat deck: %w", err)
	}

	var slides []Slide
	if info.IsDir() {
		slides, err = loadDir(path)
	} else {
		slides, err = loadFile(path)
	}
	if err != nil {
		return Deck{}, err
	}
	if len(slides) == 0 {
		return Deck{}, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return Deck{Path: path, Slides: slides}, nil
}

// Parse splits text into slides. source is recorded on each slide.
func Parse(text, source string) []Slide {
	var (
		slides  []Slide
		current []string
	)
	flush := func() {
		body := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if body == "" {
			return
		}
		slides = append(slides, Slide{Title: titleOf(body), Body: body, Source: source})
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == separator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return slides
}

func loadFile(path string) ([]Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return Parse(string(data), path), nil
}

func loadDir(dir string) ([]Slide, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read deck dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !slideExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var slides []Slide
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read slide %s: %w", name, err)
		}
		body := strings.TrimSpace(string(data))
		if body == "" {
			continue
		}
		slides = append(slides, Slide{Title: titleOf(body), Body: body, Source: path})
	}
	return slides, nil
}

// titleOf returns the first markdown heading, or the first non-blank line.
func titleOf(body string) string {
	first := ""
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
		if first == "" {
			first = trimmed
		}
	}
	return first
}
