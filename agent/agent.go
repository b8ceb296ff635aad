// Package agent is the interactive investment assistant built on the
// Gemini API. It seeds the session with the current dashboard so the
// conversation starts from the portfolio's actual state.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the assistant chat session.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	advisor *Expert
}

// New creates an Agent writing its output to w and reading user input
// from r.
func New(w io.Writer, r io.Reader) *Agent {
	return &Agent{
		w:       w,
		r:       bufio.NewReader(r),
		advisor: NewAdvisor(),
	}
}

const prompt = "assist> "

// Run starts the interactive session. The dashboard markdown is sent
// first so the advisor knows the portfolio before the first question.
// Extra prompts are consumed before reading from the input stream.
func (a *Agent) Run(ctx context.Context, client *genai.Client, dashboard string, prompts ...string) error {
	if err := a.advisor.Start(ctx, client); err != nil {
		return err
	}
	seed := "Here is my current portfolio dashboard:\n\n" + dashboard
	if _, err := a.advisor.Ask(ctx, &genai.Part{Text: seed}); err != nil {
		return err
	}

	fmt.Fprintln(a.w, "Investment assistant ready. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)

		var input string
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}
		answer, err := a.advisor.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
