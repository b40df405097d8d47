// Package chat drives generations against an inference session, either as a
// one-shot prompt or as an interactive read-generate loop. Each turn is
// independent: no conversation history is carried between prompts.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mistralchat/internal/catalog"
	"mistralchat/internal/infer"
	"mistralchat/internal/metrics"
)

const prompt = "> "

// Chat owns one loaded inference session for the lifetime of the process.
type Chat struct {
	sess infer.Session
	log  zerolog.Logger
	in   io.Reader
	out  io.Writer
}

// New loads the model through the adapter and returns a ready chat.
func New(adapter infer.Adapter, model catalog.Model, params infer.Params, log zerolog.Logger, in io.Reader, out io.Writer) (*Chat, error) {
	start := time.Now()
	sess, err := adapter.Start(model.Path, params)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("model", model.Name).
		Str("path", model.Path).
		Str("quant", model.Quant).
		Dur("elapsed", time.Since(start)).
		Msg("model loaded")
	return &Chat{sess: sess, log: log, in: in, out: out}, nil
}

// Close releases the session.
func (c *Chat) Close() error {
	if c.sess == nil {
		return nil
	}
	err := c.sess.Close()
	c.sess = nil
	return err
}

// Once runs a single generation for the given prompt.
func (c *Chat) Once(ctx context.Context, text string) error {
	return c.generate(ctx, text)
}

// Loop reads prompts line by line until EOF, interrupt, or a quit command.
// Lines are read on a separate goroutine so cancellation ends the loop even
// while it is blocked at the prompt.
func (c *Chat) Loop(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(c.in)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, prompt)
		select {
		case <-ctx.Done():
			// The reader goroutine stays parked on in until the
			// process exits.
			fmt.Fprintln(c.out)
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(c.out)
			return err
		case raw := <-lines:
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if line == ":quit" || line == ":q" {
				return nil
			}
			if err := c.generate(ctx, line); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				// Keep the loop alive on generation failures.
				c.log.Error().Err(err).Msg("generation failed")
				fmt.Fprintf(c.out, "error: %v\n", err)
			}
		}
	}
}

// generate streams one completion to out and prints a throughput line.
func (c *Chat) generate(ctx context.Context, text string) error {
	metrics.PromptLength.Observe(float64(len(text)))
	tokens := 0
	start := time.Now()
	res, err := c.sess.Generate(ctx, text, func(tok string) error {
		tokens++
		_, werr := io.WriteString(c.out, tok)
		return werr
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	if n := res.Usage.CompletionTokens; n > 0 {
		tokens = n
	}
	metrics.ObserveGeneration(tokens, elapsed)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(tokens) / elapsed.Seconds()
	}
	fmt.Fprintf(c.out, "\n%d tokens generated (%.2f token/s)\n", tokens, rate)
	return nil
}
