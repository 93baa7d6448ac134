package cmds

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/lainio/err2/try"
)

var ErrInvalid = errors.New("invalid command, check arguments")

type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// ValidateURL checks that u is an absolute http(s) URL. Empty u is valid when
// optional is set.
func ValidateURL(name, u string, optional bool) error {
	if u == "" {
		if optional {
			return nil
		}
		return fmt.Errorf("%s cannot be empty", name)
	}
	p, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (p.Scheme != "http" && p.Scheme != "https") || p.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL: %q", name, u)
	}
	return nil
}

// Fprintln is fmt.Fprintln but it allows writer to be nil. Note! it throws an
// error.
func Fprintln(w io.Writer, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but it allows writer to be nil. Note! it throws an
// error.
func Fprintf(w io.Writer, format string, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}
