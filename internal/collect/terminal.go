package collect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// sentinel terminates multi-line capture when entered alone on a line.
const sentinel = "."

// Terminal is the interactive MetadataSource: a sequential, blocking dialogue
// over a line-oriented reader/writer pair, one prompt at a time.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer

	header lipgloss.Style
	label  lipgloss.Style
	faint  lipgloss.Style
}

// NewTerminal builds a terminal collector. Styling is enabled only when out
// is a real terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		in:  bufio.NewScanner(in),
		out: out,
	}

	styled := false
	if f, ok := out.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd())
	}
	if styled {
		t.header = lipgloss.NewStyle().Bold(true)
		t.label = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
		t.faint = lipgloss.NewStyle().Faint(true)
	}
	return t
}

// Collect runs the full prompt sequence for one work.
func (t *Terminal) Collect(ctx context.Context, req Request) (Fields, error) {
	if err := ctx.Err(); err != nil {
		return Fields{}, err
	}

	rule := strings.Repeat("=", 72)
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.faint.Render(rule))
	fmt.Fprintln(t.out, t.header.Render("New image: "+req.SourceFilename))
	fmt.Fprintln(t.out, t.faint.Render(rule))

	title, err := t.promptLine(fmt.Sprintf("Title [%s]: ", req.DefaultTitle))
	if err != nil {
		return Fields{}, err
	}
	if title == "" {
		title = req.DefaultTitle
	}

	year, err := t.promptYear(req.DefaultYear)
	if err != nil {
		return Fields{}, err
	}

	license, err := t.promptLine(fmt.Sprintf("License [%s]: ", req.DefaultLicense))
	if err != nil {
		return Fields{}, err
	}
	if license == "" {
		license = req.DefaultLicense
	}

	keywords, err := t.promptKeywords()
	if err != nil {
		return Fields{}, err
	}

	t.showSuggestion(req.Suggestion)
	transcription, err := t.promptMultiline("Enter/correct the final transcription (or '.' to accept the suggestion):")
	if err != nil {
		return Fields{}, err
	}
	if transcription == "" {
		// Immediate sentinel is the explicit accept shortcut.
		transcription = req.Suggestion
	}

	description, err := t.promptMultiline("Short description / context (2-6 lines recommended):")
	if err != nil {
		return Fields{}, err
	}

	return Fields{
		Title:         title,
		Year:          year,
		License:       license,
		Keywords:      keywords,
		Transcription: transcription,
		Description:   description,
	}, nil
}

func (t *Terminal) promptYear(defaultYear int) (int, error) {
	raw, err := t.promptLine(fmt.Sprintf("Year [%d]: ", defaultYear))
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return defaultYear, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(t.out, t.faint.Render(fmt.Sprintf("(not a number, using %d)", defaultYear)))
		return defaultYear, nil
	}
	return year, nil
}

func (t *Terminal) promptKeywords() ([]string, error) {
	raw, err := t.promptLine("Keywords (comma-separated) [optional]: ")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords, nil
}

func (t *Terminal) showSuggestion(suggestion string) {
	rule := strings.Repeat("-", 72)
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.label.Render("Transcription suggestion (OCR):"))
	fmt.Fprintln(t.out, t.faint.Render(rule))
	if suggestion == "" {
		fmt.Fprintln(t.out, t.faint.Render("(empty)"))
	} else {
		fmt.Fprintln(t.out, suggestion)
	}
	fmt.Fprintln(t.out, t.faint.Render(rule))
}

func (t *Terminal) promptLine(prompt string) (string, error) {
	fmt.Fprint(t.out, t.label.Render(prompt))
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) promptMultiline(prompt string) (string, error) {
	fmt.Fprintln(t.out, t.label.Render(prompt))
	fmt.Fprintln(t.out, t.faint.Render("(end with a single line containing only: .)"))
	var lines []string
	for {
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == sentinel {
			break
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func (t *Terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.in.Text(), nil
}
