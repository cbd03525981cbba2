package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// DefaultPrompt is shown before each line in interactive sessions.
const DefaultPrompt = "(hbnb) "

// maxLineSize bounds a single command line.
const maxLineSize = 1 << 20

// Console executes command lines against a store. It keeps no state of its
// own between lines.
type Console struct {
	store  *storage.Store
	out    io.Writer
	logger *zap.SugaredLogger
}

// New returns a Console that reads and mutates store and writes command
// output and diagnostics to out.
func New(store *storage.Store, out io.Writer, logger *zap.SugaredLogger) *Console {
	return &Console{store: store, out: out, logger: logger}
}

type handler func(c *Console, args []string) error

// handlers is the single dispatch table shared by both syntaxes.
var handlers = map[string]handler{
	VerbCreate:  (*Console).create,
	VerbShow:    (*Console).show,
	VerbDestroy: (*Console).destroy,
	VerbAll:     (*Console).all,
	VerbUpdate:  (*Console).update,
	VerbCount:   (*Console).count,
	VerbHelp:    (*Console).help,
}

// diagnostics are matched with errors.Is so wrapped errors print the plain
// message.
var diagnostics = []error{
	ErrClassMissing,
	types.ErrUnknownKind,
	ErrIDMissing,
	types.ErrNotFound,
	ErrAttrMissing,
	ErrValueMissing,
	types.ErrNotSettable,
	ErrInvalidCommand,
	ErrInvalidUpdate,
	ErrDictionaryMissing,
}

// Execute runs one command line and reports whether the session should end.
func (c *Console) Execute(line string) (stop bool) {
	cmd, err := Parse(line)
	if err != nil {
		c.report(err)
		return false
	}

	switch cmd.Verb {
	case "":
		return false
	case VerbQuit, VerbEOF:
		return true
	}

	h, ok := handlers[cmd.Verb]
	if !ok {
		c.report(ErrInvalidCommand)
		return false
	}
	c.logger.Debugw("dispatching command", "verb", cmd.Verb, "args", cmd.Args)
	if err := h(c, cmd.Args); err != nil {
		c.report(err)
	}
	return false
}

// Run reads lines from in until quit, EOF or end of input. The prompt is
// written before each line when non-empty. A line longer than maxLineSize
// is discarded and reported as an invalid command.
func (c *Console) Run(in io.Reader, prompt string) error {
	r := bufio.NewReader(in)
	for {
		if prompt != "" {
			fmt.Fprint(c.out, prompt)
		}
		line, tooLong, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if tooLong {
			c.logger.Warnw("discarding oversized line", "limit", maxLineSize)
			c.report(ErrInvalidCommand)
			continue
		}
		if c.Execute(line) {
			return nil
		}
	}
}

// readLine returns the next line without its terminator. An oversized line
// is still consumed to its end so the next call starts on a fresh line.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineSize {
				tooLong, buf = true, nil
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func (c *Console) report(err error) {
	for _, d := range diagnostics {
		if errors.Is(err, d) {
			fmt.Fprintf(c.out, "** %s **\n", d)
			return
		}
	}
	c.logger.Errorw("command failed", "error", err)
	fmt.Fprintf(c.out, "** %s **\n", err)
}
