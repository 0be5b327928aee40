// Package trace parses allocation traces and replays them against an
// allocator.
//
// A trace is a text file with one request per line:
//
//	a <id> <size>          allocate
//	f <id>                 free
//	r <id> <size>          reallocate
//	c <id> <count> <size>  zeroed allocation of count*size bytes
//
// Blank lines and lines starting with '#' are ignored. Traces in the
// classic malloc-lab layout begin with up to four lines holding a single
// number each (suggested heap size, id count, op count, weight); these are
// kept in Header and otherwise ignored.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind is a trace operation.
type Kind byte

// Operation kinds, named by their trace letter.
const (
	KindAlloc   Kind = 'a'
	KindFree    Kind = 'f'
	KindRealloc Kind = 'r'
	KindCalloc  Kind = 'c'
)

func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindFree:
		return "free"
	case KindRealloc:
		return "realloc"
	case KindCalloc:
		return "calloc"
	default:
		return fmt.Sprintf("Kind(%q)", byte(k))
	}
}

// Op is one trace request.
type Op struct {
	Kind  Kind
	ID    int
	Size  int // bytes for alloc and realloc, element size for calloc
	Count int // calloc element count
	Line  int // 1-based source line
}

// Bytes returns the payload size the op requests.
func (op Op) Bytes() int {
	if op.Kind == KindCalloc {
		return op.Count * op.Size
	}
	return op.Size
}

// Trace is a parsed trace.
type Trace struct {
	Name   string
	Header []int
	Ops    []Op
	NumIDs int // one more than the largest id used
}

// maxHeaderLines bounds the numeric preamble of malloc-lab traces.
const maxHeaderLines = 4

// ParseFile parses the trace at path.
func ParseFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tr.Name = filepath.Base(path)
	return tr, nil
}

// Parse reads a trace from r.
func Parse(r io.Reader) (*Trace, error) {
	tr := &Trace{}
	sc := bufio.NewScanner(r)
	line := 0
	inHeader := true

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if inHeader && len(fields) == 1 && len(tr.Header) < maxHeaderLines {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				tr.Header = append(tr.Header, n)
				continue
			}
		}
		inHeader = false

		op, err := parseOp(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q: %w", ErrSyntax, line, text, err)
		}
		op.Line = line
		tr.NumIDs = max(tr.NumIDs, op.ID+1)
		tr.Ops = append(tr.Ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tr, nil
}

func parseOp(fields []string) (Op, error) {
	if len(fields[0]) != 1 {
		return Op{}, fmt.Errorf("unknown op %q", fields[0])
	}
	op := Op{Kind: Kind(fields[0][0])}

	var want int
	switch op.Kind {
	case KindFree:
		want = 2
	case KindAlloc, KindRealloc:
		want = 3
	case KindCalloc:
		want = 4
	default:
		return Op{}, fmt.Errorf("unknown op %q", fields[0])
	}
	if len(fields) != want {
		return Op{}, fmt.Errorf("%s takes %d arguments, got %d", op.Kind, want-1, len(fields)-1)
	}

	nums := make([]int, len(fields)-1)
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Op{}, err
		}
		if n < 0 {
			return Op{}, fmt.Errorf("negative value %d", n)
		}
		nums[i] = n
	}

	op.ID = nums[0]
	switch op.Kind {
	case KindAlloc, KindRealloc:
		op.Size = nums[1]
	case KindCalloc:
		op.Count, op.Size = nums[1], nums[2]
	}
	return op, nil
}
