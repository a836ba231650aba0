package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/nukata/goarith"
	"github.com/sergev/lispy/lang"
)

// ErrUnterminated reports input that ended inside a list.
var ErrUnterminated = errors.New("unterminated list")

// ReadString parses all expressions from a string.
func ReadString(src string) ([]*lang.Value, error) {
	return ReadAll(strings.NewReader(src))
}

// ReadAll parses all expressions from the provided reader.
func ReadAll(r io.Reader) ([]*lang.Value, error) {
	rd := newRuneReader(r)
	var values []*lang.Value
	for {
		if err := rd.skipWhitespace(); err != nil {
			if errors.Is(err, io.EOF) {
				return values, nil
			}
			discard(values)
			return nil, err
		}
		val, err := readExpr(rd)
		if err != nil {
			discard(values)
			return nil, err
		}
		values = append(values, val)
	}
}

func discard(values []*lang.Value) {
	for _, v := range values {
		v.Del()
	}
}

type runeReader struct {
	br   *bufio.Reader
	undo []rune
}

func newRuneReader(r io.Reader) *runeReader {
	return &runeReader{br: bufio.NewReader(r)}
}

func (rr *runeReader) read() (rune, error) {
	if len(rr.undo) > 0 {
		r := rr.undo[len(rr.undo)-1]
		rr.undo = rr.undo[:len(rr.undo)-1]
		return r, nil
	}
	ch, _, err := rr.br.ReadRune()
	return ch, err
}

func (rr *runeReader) unread(r rune) {
	rr.undo = append(rr.undo, r)
}

func (rr *runeReader) skipWhitespace() error {
	for {
		r, err := rr.read()
		if err != nil {
			return err
		}
		if unicode.IsSpace(r) {
			continue
		}
		if r == ';' {
			if err := rr.skipLine(); err != nil {
				return err
			}
			continue
		}
		rr.unread(r)
		return nil
	}
}

func (rr *runeReader) skipLine() error {
	for {
		r, err := rr.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

func readExpr(rr *runeReader) (*lang.Value, error) {
	r, err := rr.read()
	if err != nil {
		return nil, err
	}
	switch r {
	case '(':
		return readList(rr, lang.SExpr(), ')')
	case '{':
		return readList(rr, lang.QExpr(), '}')
	case ')', '}':
		return nil, fmt.Errorf("unexpected %c", r)
	default:
		if !isSymbolRune(r) {
			return nil, fmt.Errorf("unexpected character %q", r)
		}
		rr.unread(r)
		return readAtom(rr)
	}
}

func readList(rr *runeReader, list *lang.Value, end rune) (*lang.Value, error) {
	for {
		if err := rr.skipWhitespace(); err != nil {
			list.Del()
			if errors.Is(err, io.EOF) {
				return nil, ErrUnterminated
			}
			return nil, err
		}
		r, err := rr.read()
		if err != nil {
			list.Del()
			return nil, err
		}
		if r == end {
			return list, nil
		}
		rr.unread(r)
		elem, err := readExpr(rr)
		if err != nil {
			list.Del()
			return nil, err
		}
		list.Add(elem)
	}
}

func readAtom(rr *runeReader) (*lang.Value, error) {
	var builder strings.Builder
	for {
		r, err := rr.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if !isSymbolRune(r) {
			rr.unread(r)
			break
		}
		builder.WriteRune(r)
	}
	token := builder.String()
	if n, ok := tryNumber(token); ok {
		return lang.NumberValue(n), nil
	}
	return lang.SymbolValue(token), nil
}

func isSymbolRune(r rune) bool {
	if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return true
	}
	return strings.ContainsRune("_+-*/\\=<>!&%^.", r)
}

func tryNumber(token string) (goarith.Number, bool) {
	digits := strings.TrimLeft(token, "+-")
	if len(token)-len(digits) > 1 || digits == "" {
		return nil, false
	}
	if c := digits[0]; c != '.' && (c < '0' || c > '9') {
		return nil, false
	}
	z := new(big.Int)
	if _, ok := z.SetString(token, 10); ok {
		return goarith.AsNumber(z), true
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return goarith.AsNumber(f), true
	}
	return nil, false
}
