package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/aidanlsb/jrnl/internal/repl"
)

// session reads commands line by line and routes them until a command
// asks to exit, input ends, or an interrupt arrives.
type session struct {
	router      *repl.Router
	in          io.Reader
	out         io.Writer
	prompt      string
	interactive bool
	interrupts  <-chan os.Signal
}

// run returns the argument vector to execute after the prompt closes. It is
// empty for quit, end of input and interrupts.
func (s *session) run() ([]string, error) {
	reqs := make(chan struct{})
	defer close(reqs)
	lines := make(chan string, 1)
	readErr := make(chan error, 1)
	go readLines(s.in, reqs, lines, readErr)

	pending := false
	for {
		if s.interactive {
			fmt.Fprint(s.out, "\n"+s.prompt)
		}
		// Input is read one line per request so nothing is consumed from
		// stdin once the editor owns it.
		if !pending {
			reqs <- struct{}{}
			pending = true
		}

		select {
		case <-s.interrupts:
			if s.interactive {
				fmt.Fprintln(s.out)
			}
			return nil, nil
		case line, ok := <-lines:
			if !ok {
				if s.interactive {
					fmt.Fprintln(s.out)
				}
				return nil, <-readErr
			}
			pending = false

			tokens := strings.Fields(line)
			if len(tokens) == 0 {
				continue
			}
			out, err := s.router.Handle(tokens)
			if err != nil {
				return nil, err
			}
			if out.Exit {
				return out.ExitArgs, nil
			}
		}
	}
}

func readLines(in io.Reader, reqs <-chan struct{}, lines chan<- string, readErr chan<- error) {
	sc := bufio.NewScanner(in)
	for range reqs {
		if !sc.Scan() {
			readErr <- sc.Err()
			close(lines)
			return
		}
		lines <- sc.Text()
	}
}

// notifyInterrupt delivers SIGINT on the returned channel instead of killing
// the process, until stop is called.
func notifyInterrupt() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return ch, func() { signal.Stop(ch) }
}
