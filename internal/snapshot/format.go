// Package snapshot reads and writes slabfields in the plain text format
//
//	<width> <height>
//	<height lines of width whitespace-separated integers>
//
// and manages directories of intermediate dumps. Line y of the body holds
// the cells (0,y) .. (width-1,y), so x, the default wind axis, runs along a
// line. Files written one line per x column instead load transposed.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"dune-ca/internal/core"
)

// ErrParse matches every *ParseError under errors.Is.
var ErrParse = errors.New("snapshot: parse error")

// maxCells caps the body size a header may announce.
const maxCells = 1 << 28

// maxLineBytes caps the length of a single input line.
var maxLineBytes = 64 * 1024 * 1024

// ParseError describes malformed snapshot text.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("snapshot: line %d: %s", e.Line, e.Msg)
	}
	return "snapshot: " + e.Msg
}

// Is lets errors.Is(err, ErrParse) succeed.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// tokenizer yields whitespace-separated tokens together with their line.
type tokenizer struct {
	sc     *bufio.Scanner
	line   int
	fields []string
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLineBytes)), maxLineBytes)
	return &tokenizer{sc: sc}
}

// next returns the next token, or ok=false at end of input.
func (t *tokenizer) next() (tok string, ok bool, err error) {
	for len(t.fields) == 0 {
		if !t.sc.Scan() {
			err := t.sc.Err()
			if errors.Is(err, bufio.ErrTooLong) {
				return "", false, &ParseError{Line: t.line + 1, Msg: fmt.Sprintf("line longer than %d bytes", maxLineBytes)}
			}
			return "", false, err
		}
		t.line++
		t.fields = strings.Fields(t.sc.Text())
	}
	tok = t.fields[0]
	t.fields = t.fields[1:]
	return tok, true, nil
}

func (t *tokenizer) nextInt(what string) (int, error) {
	tok, ok, err := t.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &ParseError{Line: t.line, Msg: "unexpected end of input reading " + what}
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ParseError{Line: t.line, Msg: fmt.Sprintf("%s: %q is not an integer", what, tok)}
	}
	return v, nil
}

// Parse reads a snapshot. Nothing is returned on failure.
func Parse(r io.Reader) (*core.HeightGrid, error) {
	t := newTokenizer(r)
	w, err := t.nextInt("width")
	if err != nil {
		return nil, err
	}
	h, err := t.nextInt("height")
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("snapshot: header %d %d: %w", w, h, core.ErrInvalidDimensions)
	}
	if h > math.MaxInt/w || w*h > maxCells {
		return nil, &ParseError{Line: t.line, Msg: fmt.Sprintf("grid %dx%d is too large", w, h)}
	}

	cells := make([]int, w*h)
	for i := range cells {
		v, err := t.nextInt(fmt.Sprintf("cell %d of %d", i+1, len(cells)))
		if err != nil {
			return nil, err
		}
		cells[i] = v
	}
	tok, ok, err := t.next()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, &ParseError{Line: t.line, Msg: fmt.Sprintf("unexpected trailing token %q after %d cells", tok, len(cells))}
	}
	return core.NewHeightGridFrom(w, h, cells)
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*core.HeightGrid, error) {
	return Parse(strings.NewReader(s))
}

// Format writes g in snapshot form: the header, then one line per row with
// values separated by single spaces.
func Format(w io.Writer, g *core.HeightGrid) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16*g.W)
	buf = strconv.AppendInt(buf, int64(g.W), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(g.H), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		buf = buf[:0]
		for x := 0; x < g.W; x++ {
			if x > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(cells[g.Index(x, y)]), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatString renders g to a string.
func FormatString(g *core.HeightGrid) string {
	var sb strings.Builder
	_ = Format(&sb, g)
	return sb.String()
}

// ReadFile parses the snapshot stored at path.
func ReadFile(path string) (*core.HeightGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteFile stores g at path, replacing any existing file.
func WriteFile(path string, g *core.HeightGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Format(f, g); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
