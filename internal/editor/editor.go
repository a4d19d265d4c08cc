// Package editor builds and runs the argument vectors that open journal
// files in the user's editor.
package editor

import (
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// Command returns the argument vector that opens paths in editor.
//
// A plain program name ("vim") is used directly. An editor string with
// arguments or quoting ("open -a Typora", "code --wait") is run through
// "sh -c" with every path shell-quoted.
func Command(editor string, paths ...string) []string {
	editor = strings.TrimSpace(editor)
	if !strings.ContainsAny(editor, " \t'\"") {
		argv := make([]string, 0, len(paths)+1)
		argv = append(argv, editor)
		return append(argv, paths...)
	}

	var sb strings.Builder
	sb.WriteString(editor)
	for _, p := range paths {
		sb.WriteByte(' ')
		sb.WriteString(shellQuote(p))
	}
	return []string{"sh", "-c", sb.String()}
}

// Name returns the program name of an editor command line, for messages.
func Name(editor string) string {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return ""
	}

	var program string
	if q := editor[0]; q == '"' || q == '\'' {
		if end := strings.IndexByte(editor[1:], q); end >= 0 {
			program = editor[1 : end+1]
		} else {
			program = editor[1:]
		}
	} else {
		program = strings.Fields(editor)[0]
	}
	return filepath.Base(program)
}

// Run starts argv in the foreground with the given streams attached and
// waits for it to finish.
func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return errors.New("editor: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// shellQuote quotes a string for safe use in shell commands.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
