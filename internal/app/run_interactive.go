package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// linePrompter reads plain lines, for pipes and scripted input.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) Confirm(commitMsg string) (string, error) {
	fmt.Fprintf(p.out, "Generated commit message:\n%s\n", commitMsg)
	fmt.Fprint(p.out, "Accept commit message? (y/n/e): ")
	return p.readLine()
}

func (p *linePrompter) Edit(string) (string, error) {
	fmt.Fprint(p.out, "Enter edited commit message: ")
	return p.readLine()
}

// readLine returns one line without its terminator. A final line without a
// newline is still returned; io.EOF is only reported when nothing was read.
func (p *linePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// formPrompter renders the message in a box and asks through huh fields.
// With accessible set the forms fall back to plain line prompts on in/out.
type formPrompter struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

func (p *formPrompter) Confirm(commitMsg string) (string, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")).
		Render("Generated commit message:"))

	fmt.Fprintln(p.out, lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		MarginBottom(1).
		Render(commitMsg))

	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Accept commit message? (y/n/e)").
				Description("y: commit, e: edit, anything else: regenerate").
				Value(&answer),
		),
	)
	if err := p.run(form); err != nil {
		return "", err
	}
	return answer, nil
}

// Edit starts from the current message, so submitting unchanged keeps it.
func (p *formPrompter) Edit(commitMsg string) (string, error) {
	content := commitMsg

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Enter edited commit message").
				Description("Enter to submit, Alt+Enter for a new line").
				Value(&content),
		),
	)
	if err := p.run(form); err != nil {
		return "", err
	}
	return content, nil
}

func (p *formPrompter) run(form *huh.Form) error {
	form = form.WithAccessible(p.accessible)
	if p.in != nil {
		form = form.WithInput(p.in)
	}
	if p.out != nil {
		form = form.WithOutput(p.out)
	}
	return form.Run()
}

// newSpinner returns a Busy func drawing on f. Nothing is drawn unless f is
// a terminal.
func newSpinner(f *os.File) func() func() {
	return func() func() {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
		s.Suffix = " Generating commit message..."
		s.Start()
		return s.Stop
	}
}
