package msg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
)

func Error(format string, a ...any) {
	fmt.Print(color.HiRedString("error"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

func Warn(format string, a ...any) {
	fmt.Print(color.YellowString("warn"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

func Info(format string, a ...any) {
	fmt.Print(color.HiGreenString("info"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

func Hint(format string, a ...any) {
	fmt.Print(color.HiMagentaString("hint"))
	fmt.Print(": ")
	fmt.Printf(format, a...)
	fmt.Print("\n")
}

// PrefixWriter prepends Prefix to every line written through it.
// Used to label live compiler output, e.g. "gcc: <diagnostic>".
type PrefixWriter struct {
	Prefix    string
	W         io.Writer
	didPrefix bool
}

func (w *PrefixWriter) Write(p []byte) (n int, err error) {
	rest := p
	for len(rest) > 0 {
		if !w.didPrefix {
			if _, err := io.WriteString(w.W, w.Prefix); err != nil {
				return len(p) - len(rest), err
			}
			w.didPrefix = true
		}
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			if _, err := w.W.Write(rest); err != nil {
				return len(p) - len(rest), err
			}
			break
		}
		if _, err := w.W.Write(rest[:i+1]); err != nil {
			return len(p) - len(rest), err
		}
		w.didPrefix = false
		rest = rest[i+1:]
	}
	return len(p), nil
}
