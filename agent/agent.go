// Package agent implements an interactive AI reviewer of funding reports.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Asker answers questions. *Expert is an Asker.
type Asker interface {
	Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error)
}

// Agent runs the chat session between the user and an expert.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	expert Asker
}

// New creates an Agent writing to 'w' and reading user input from 'r'.
func New(w io.Writer, r io.Reader, expert Asker) *Agent {
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		expert: expert,
	}
}

const prompt = "assist> "

// Run starts the interactive REPL session. 'prompts' are asked first, as if typed
// by the user. The session ends on "bye" or at the end of the input.
func (a *Agent) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Welcome to fmstats assist. Type 'bye' to exit.")

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
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			input = strings.TrimSpace(input)
		}

		if input == "bye" {
			return nil
		}
		if input == "" {
			continue
		}

		content, err := a.expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		for _, part := range content.Parts {
			if part.Text != "" {
				fmt.Fprintln(a.w, part.Text)
			}
		}
	}
}
