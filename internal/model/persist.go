package model

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"ngramcorrector/internal/lexicon"
)

const (
	header       = "SpellCheckerDictionary"
	orderPrefix  = "ngram : "
	sectionBreak = "#"
)

var (
	ErrBadHeader = errors.New("not a spell checker dictionary")
	ErrMalformed = errors.New("malformed dictionary record")
)

// Save writes the lexicon and the raw language model counts, gzip
// compressed.
func (m *Model) Save(w io.Writer) error {
	zw := gzip.NewWriter(w)
	bw := bufio.NewWriter(zw)

	bw.WriteString(header + "\n")
	bw.WriteString(orderPrefix + strconv.Itoa(m.order) + "\n")
	bw.WriteString(sectionBreak + "\n")
	bw.WriteString(strconv.Itoa(m.lex.NextID()) + "\n")

	m.lex.Walk(func(word []rune, id int) {
		for i, r := range word {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(int(r)))
		}
		bw.WriteString(":" + strconv.Itoa(id) + "\n")
	})
	bw.WriteString(sectionBreak + "\n")

	m.lm.Walk(func(ids []int, count int) {
		for i, id := range ids {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(id))
		}
		bw.WriteString(":" + strconv.Itoa(count) + "\n")
	})

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "writing dictionary")
	}
	return errors.Wrap(zw.Close(), "closing gzip stream")
}

// SaveFile writes the model to path.
func (m *Model) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating dictionary file")
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load restores a model written by Save and finalizes it. Word identifiers
// are taken from the stream, never re-derived.
func Load(r io.Reader, opts ...Option) (*Model, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(ErrBadHeader, err.Error())
	}
	defer zr.Close()

	p := &parser{scanner: bufio.NewScanner(zr)}
	p.scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	m, err := p.parse(opts)
	if err != nil {
		return nil, err
	}
	m.Finalize()
	return m, nil
}

// LoadFile maps the file at path into memory and restores the model from
// it.
func LoadFile(path string, opts ...Option) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening dictionary file")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat dictionary file")
	}
	if st.Size() == 0 {
		return nil, errors.Wrapf(ErrBadHeader, "%s is empty", path)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(err, "mapping dictionary file")
	}
	defer data.Unmap()

	return Load(bytes.NewReader(data), opts...)
}

type parser struct {
	scanner *bufio.Scanner
	line    int
}

func (p *parser) next() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	p.line++
	return p.scanner.Text(), true
}

func (p *parser) malformed(format string, args ...interface{}) error {
	args = append([]interface{}{p.line}, args...)
	return errors.Wrapf(ErrMalformed, "line %d: "+format, args...)
}

func (p *parser) parse(opts []Option) (*Model, error) {
	line, ok := p.next()
	if !ok || line != header {
		return nil, p.scanErr(errors.WithStack(ErrBadHeader))
	}

	line, ok = p.next()
	if !ok || !strings.HasPrefix(line, orderPrefix) {
		return nil, p.scanErr(p.malformed("expected %q", orderPrefix+"<order>"))
	}
	order, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, orderPrefix)))
	if err != nil {
		return nil, p.malformed("order: %v", err)
	}
	m, err := New(order, opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if line, ok = p.next(); !ok || line != sectionBreak {
		return nil, p.scanErr(p.malformed("expected %q after configuration", sectionBreak))
	}
	if err := p.parseLexicon(m.lex); err != nil {
		return nil, err
	}
	if err := p.parseCounts(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *parser) parseLexicon(lex *lexicon.Automaton) error {
	line, ok := p.next()
	if !ok {
		return p.scanErr(p.malformed("missing next identifier"))
	}
	nextID, err := strconv.Atoi(line)
	if err != nil || nextID < 1 {
		return p.malformed("next identifier %q", line)
	}

	for {
		line, ok = p.next()
		if !ok {
			return p.scanErr(p.malformed("lexicon section not terminated"))
		}
		if line == sectionBreak {
			break
		}
		left, right, err := p.split(line)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(right)
		if err != nil || id <= lexicon.Delimiter {
			return p.malformed("word identifier %q", right)
		}
		word := make([]rune, len(left))
		for i, s := range left {
			cp, err := strconv.Atoi(s)
			if err != nil || cp <= lexicon.Delimiter {
				return p.malformed("symbol %q", s)
			}
			word[i] = rune(cp)
		}
		if _, dup := lex.Word(id); dup {
			return p.malformed("duplicate identifier %d", id)
		}
		if lex.Contains(word) {
			return p.malformed("duplicate word %q", string(word))
		}
		lex.InsertWithID(word, id)
	}
	lex.SetNextID(nextID)
	return nil
}

func (p *parser) parseCounts(m *Model) error {
	for {
		line, ok := p.next()
		if !ok {
			return p.scanErr(nil)
		}
		if line == "" {
			continue
		}
		left, right, err := p.split(line)
		if err != nil {
			return err
		}
		if len(left) > m.order {
			return p.malformed("context of %d words exceeds order %d", len(left), m.order)
		}
		count, err := strconv.Atoi(right)
		if err != nil || count < 0 {
			return p.malformed("count %q", right)
		}
		ids := make([]int, len(left))
		for i, s := range left {
			if ids[i], err = strconv.Atoi(s); err != nil {
				return p.malformed("word identifier %q", s)
			}
			if ids[i] == lexicon.Delimiter {
				continue
			}
			if _, known := m.lex.Word(ids[i]); !known {
				return p.malformed("unknown word identifier %d", ids[i])
			}
		}
		m.lm.ObserveWithCount(ids, count)
	}
}

// split parses "a,b,c:n" into its list and its value.
func (p *parser) split(line string) ([]string, string, error) {
	i := strings.LastIndexByte(line, ':')
	if i <= 0 || i == len(line)-1 {
		return nil, "", p.malformed("%q", line)
	}
	return strings.Split(line[:i], ","), line[i+1:], nil
}

func (p *parser) scanErr(fallback error) error {
	if err := p.scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading line %d", p.line+1)
	}
	return fallback
}
