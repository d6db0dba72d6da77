package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt is written before each input line.
const Prompt = "stockxpert> "

// Run reads commands from in until quit, EOF or ctx is cancelled. Replies go
// through out so they never interleave with panel output.
func Run(ctx context.Context, in io.Reader, out *Terminal, cmds *Commands) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	out.Print("Type help for commands.")
	out.prompt()
	for {
		select {
		case <-ctx.Done():
			out.log.Info().Msg("console stopped")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			text := strings.TrimSpace(line)
			if text == "" {
				out.prompt()
				continue
			}
			out.log.Debug().Str("command", text).Msg("received command")
			reply, quit := cmds.Handle(ctx, text)
			if reply != "" {
				out.Print(reply)
			}
			if quit {
				return nil
			}
			out.prompt()
		}
	}
}
