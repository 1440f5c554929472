// Package control reads OSD requests as text lines:
//
//	show <played> <duration> [title...]
//	hide
//
// A title may be quoted shell-style.
package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/depeter/couchosd/internal/osd"
)

var (
	ErrEmpty          = errors.New("empty line")
	ErrUnknownCommand = errors.New("unknown command")
)

type Kind int

const (
	Show Kind = iota
	Hide
)

// Command is one parsed request.
type Command struct {
	Kind     Kind
	Played   int
	Duration int
	Title    string
}

// Parse parses one line. Blank lines and lines starting with # yield ErrEmpty.
// The title is everything after the duration. A title starting with a quote
// is unquoted shell-style, any other title is taken verbatim, # included.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, ErrEmpty
	}
	name, rest := cutField(line)

	switch strings.ToLower(name) {
	case "show":
		playedArg, args := cutField(rest)
		durationArg, titleArg := cutField(args)
		if durationArg == "" {
			return Command{}, errors.New("show: want <played> <duration> [title]")
		}
		played, err := strconv.Atoi(playedArg)
		if err != nil {
			return Command{}, fmt.Errorf("show: played: %w", err)
		}
		duration, err := strconv.Atoi(durationArg)
		if err != nil {
			return Command{}, fmt.Errorf("show: duration: %w", err)
		}
		title, err := parseTitle(titleArg)
		if err != nil {
			return Command{}, fmt.Errorf("show: title: %w", err)
		}
		return Command{
			Kind:     Show,
			Played:   played,
			Duration: duration,
			Title:    title,
		}, nil
	case "hide":
		if rest != "" {
			return Command{}, errors.New("hide: takes no arguments")
		}
		return Command{Kind: Hide}, nil
	}
	return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, name)
}

// cutField splits off the first whitespace separated field of s.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

func parseTitle(s string) (string, error) {
	if !strings.HasPrefix(s, `"`) && !strings.HasPrefix(s, "'") {
		return s, nil
	}
	args, err := shlex.Split(s)
	if err != nil {
		return "", err
	}
	return strings.Join(args, " "), nil
}

// Serve reads commands from r and queues them on d until r is exhausted
// or ctx is done. Malformed lines are logged and skipped.
func Serve(ctx context.Context, r io.Reader, d *osd.Dispatcher, log *zap.SugaredLogger) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		cmd, err := Parse(sc.Text())
		if errors.Is(err, ErrEmpty) {
			continue
		}
		if err != nil {
			log.Warnw("bad command", "line", lineNo, "error", err)
			continue
		}

		switch cmd.Kind {
		case Show:
			err = d.Show(ctx, cmd.Played, cmd.Duration, cmd.Title)
		case Hide:
			err = d.Hide(ctx)
		}
		if err != nil {
			return err
		}
	}
	return sc.Err()
}
