package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/flintwinters/jisp"
)

type inputIter interface {
	// Next returns the next decoded program value, or an error value to
	// report, and true; it returns false once the input is exhausted.
	Next() (any, bool)
	io.Closer
}

func (cli *cli) newInputIter(fname string) (inputIter, error) {
	if fname == "-" {
		return newStreamInputIter(cli.inStream, "<stdin>"), nil
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	bs, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return newBytesInputIter(bs, fname), nil
}

// streamInputIter reads the whole stream up front so comments and trailing
// commas can be stripped before decoding; the decoder then yields each
// top-level JSON value in sequence.
type streamInputIter struct {
	r     io.Reader
	fname string
	iter  *bytesInputIter
	err   error
}

func newStreamInputIter(r io.Reader, fname string) *streamInputIter {
	return &streamInputIter{r: r, fname: fname}
}

func (i *streamInputIter) Next() (any, bool) {
	if i.err != nil {
		return nil, false
	}
	if i.iter == nil {
		bs, err := io.ReadAll(i.r)
		if err != nil {
			i.err = err
			return err, true
		}
		i.iter = newBytesInputIter(bs, i.fname)
	}
	return i.iter.Next()
}

func (i *streamInputIter) Close() error {
	i.err = io.EOF
	return nil
}

type bytesInputIter struct {
	dec      *json.Decoder
	fname    string
	contents string
	err      error
}

func newBytesInputIter(bs []byte, fname string) *bytesInputIter {
	stripped := jisp.StripComments(bs)
	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.UseNumber()
	return &bytesInputIter{dec: dec, fname: fname, contents: string(stripped)}
}

func (i *bytesInputIter) Next() (any, bool) {
	if i.err != nil {
		return nil, false
	}
	var v any
	if err := i.dec.Decode(&v); err != nil {
		if err == io.EOF {
			i.err = err
			return nil, false
		}
		i.err = &jsonParseError{i.fname, i.contents, err}
		return i.err, true
	}
	return jisp.Normalize(v), true
}

func (i *bytesInputIter) Close() error {
	i.err = io.EOF
	return nil
}
