// Package parser reads a Markdown board outline: YAML frontmatter for the
// board, "## " headings for lists and bullet items for cards.
package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoTitle is returned when neither frontmatter nor an H1 names the board.
var ErrNoTitle = errors.New("parser: board title missing")

// Outline is a parsed board without ids or order values.
type Outline struct {
	Title       string
	Description string
	Lists       []ListOutline
}

// ListOutline is one "## " section.
type ListOutline struct {
	Title string
	Cards []CardOutline
}

// CardOutline is one bullet. Indented lines below it form the description.
type CardOutline struct {
	Title       string
	Description string
}

type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Parse builds an Outline from raw Markdown bytes.
func Parse(data []byte) (*Outline, error) {
	fm, body := splitFrontmatter(data)

	out := &Outline{Title: strings.TrimSpace(fm.Title), Description: strings.TrimSpace(fm.Description)}
	var card *CardOutline
	var desc []string

	flush := func() {
		if card != nil {
			card.Description = strings.Join(desc, "\n")
		}
		card, desc = nil, nil
	}

	sc := bufio.NewScanner(strings.NewReader(body))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)

		switch {
		case isListHeading(line) && !isIndented(raw):
			flush()
			title := strings.TrimSpace(line[2:])
			if title == "" {
				return nil, fmt.Errorf("parser: line %d: empty list title", lineNo)
			}
			out.Lists = append(out.Lists, ListOutline{Title: title})
		case strings.HasPrefix(line, "# ") && !isIndented(raw):
			flush()
			if out.Title == "" {
				out.Title = strings.TrimSpace(line[2:])
			}
		case isBullet(line) && !isIndented(raw):
			flush()
			if len(out.Lists) == 0 {
				return nil, fmt.Errorf("parser: line %d: card outside of a list", lineNo)
			}
			title := bulletText(line)
			if title == "" {
				return nil, fmt.Errorf("parser: line %d: empty card title", lineNo)
			}
			l := &out.Lists[len(out.Lists)-1]
			l.Cards = append(l.Cards, CardOutline{Title: title})
			card = &l.Cards[len(l.Cards)-1]
		case card != nil && isIndented(raw) && line != "":
			desc = append(desc, line)
		case line == "":
			// blank lines keep the current card open
		default:
			flush()
		}
	}
	flush()
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parser: scan: %w", err)
	}
	if out.Title == "" {
		return nil, ErrNoTitle
	}
	return out, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the body. Missing or invalid frontmatter leaves the whole input as body.
func splitFrontmatter(data []byte) (frontmatter, string) {
	const delim = "---"
	var fm frontmatter
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return fm, string(data)
	}
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return fm, string(data)
	}
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return frontmatter{}, string(data)
	}
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")
	return fm, body
}

func isIndented(raw string) bool {
	return strings.HasPrefix(raw, "  ") || strings.HasPrefix(raw, "\t")
}

func isListHeading(line string) bool {
	return line == "##" || strings.HasPrefix(line, "## ")
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || line == "-" || line == "*"
}

// bulletText strips the bullet marker and an optional task checkbox.
func bulletText(line string) string {
	s := strings.TrimSpace(line[1:])
	for _, box := range []string{"[ ]", "[x]", "[X]"} {
		if s == box {
			return ""
		}
		if strings.HasPrefix(s, box+" ") {
			return strings.TrimSpace(s[len(box):])
		}
	}
	return s
}
