package content

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/jeeprep/internal/domain"
)

// Topic decks are markdown files built from prefixed lines. "S:" and
// "C:" set the subject and chapter for everything that follows; each
// "T:" starts a topic and "H:" opens its hints, which may continue over
// following unprefixed lines. "---" closes the current topic.
const (
	subjectPrefix = "S:"
	chapterPrefix = "C:"
	topicPrefix   = "T:"
	hintPrefix    = "H:"
)

// Entry is one parsed topic-deck item, ready to become a revision topic.
type Entry struct {
	Subject domain.Subject
	Chapter string
	Topic   string
	Hints   string
}

type state int

const (
	seeking state = iota
	readingTopic
	readingHints
)

// ParseFile reads a deck file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all entries. Entries with a
// missing or unknown subject, or without a chapter or topic name, are
// reported as errors and skipped; the rest of the file still parses.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)

	var entries []Entry
	var errs []string
	var subject domain.Subject
	var chapter string
	var current Entry
	var hintLines []string
	currentState := seeking
	lineNo := 0

	finishEntry := func() {
		if currentState == seeking {
			return
		}
		current.Hints = strings.TrimSpace(strings.Join(hintLines, "\n"))
		hintLines = nil
		switch {
		case current.Topic == "":
			errs = append(errs, fmt.Sprintf("line %d: topic without a name", lineNo))
		case !current.Subject.Valid():
			errs = append(errs, fmt.Sprintf("topic %q: missing or unknown subject %q", current.Topic, current.Subject))
		case current.Chapter == "":
			errs = append(errs, fmt.Sprintf("topic %q: no chapter set", current.Topic))
		default:
			entries = append(entries, current)
		}
		current = Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		switch {
		case line == "---":
			finishEntry()
		case strings.HasPrefix(line, subjectPrefix):
			finishEntry()
			subject = domain.Subject(strings.TrimSpace(line[len(subjectPrefix):]))
		case strings.HasPrefix(line, chapterPrefix):
			finishEntry()
			chapter = strings.TrimSpace(line[len(chapterPrefix):])
		case strings.HasPrefix(line, topicPrefix):
			finishEntry()
			current = Entry{
				Subject: subject,
				Chapter: chapter,
				Topic:   strings.TrimSpace(line[len(topicPrefix):]),
			}
			currentState = readingTopic
		case strings.HasPrefix(line, hintPrefix):
			if currentState == seeking {
				errs = append(errs, fmt.Sprintf("line %d: hint outside a topic", lineNo))
				continue
			}
			currentState = readingHints
			hintLines = append(hintLines, strings.TrimSpace(line[len(hintPrefix):]))
		default:
			// Unprefixed lines continue the hints block; anywhere else
			// they are deck prose and ignored.
			if currentState == readingHints && strings.TrimSpace(line) != "" {
				hintLines = append(hintLines, line)
			}
		}
	}
	finishEntry()

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read deck: %w", err)
	}
	if len(errs) > 0 {
		return entries, fmt.Errorf("deck has %d invalid entries: %s", len(errs), strings.Join(errs, "; "))
	}
	return entries, nil
}
