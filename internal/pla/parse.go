package pla

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pborges/logicmin/internal/logic"
)

var (
	ErrSyntax      = errors.New("pla syntax error")
	ErrUnsupported = errors.New("unsupported pla feature")
	ErrConflict    = errors.New("pla rows disagree")
)

// PLA is a parsed single-output cover.
type PLA struct {
	Inputs int
	// Labels name the inputs; x0..xn-1 when the file has no .ilb line.
	Labels []string
	Output string
	// Type is "f", "r" or "fr".
	Type string
	Rows []Row
}

// Row is one cube of the cover with its output bit.
type Row struct {
	Input  logic.Term
	Output bool
}

func lineError(n int, format string, args ...interface{}) error {
	return errors.Wrapf(ErrSyntax, "line %d: %s", n, fmt.Sprintf(format, args...))
}

// Parse reads the .i .o .ilb .ob .p .type and .e directives and the cube
// rows. Only single-output covers are accepted.
func Parse(r io.Reader) (*PLA, error) {
	p := &PLA{Type: "f"}
	declared := -1
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if strings.HasPrefix(fields[0], ".") {
			done, err := p.directive(n, fields, &declared)
			if err != nil {
				return nil, err
			}
			if done {
				break
			}
			continue
		}
		row, err := p.row(n, fields)
		if err != nil {
			return nil, err
		}
		p.Rows = append(p.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if p.Inputs == 0 {
		return nil, errors.Wrap(ErrSyntax, "missing .i")
	}
	if p.Labels != nil && len(p.Labels) != p.Inputs {
		return nil, errors.Wrapf(ErrSyntax, ".ilb names %d inputs, want %d", len(p.Labels), p.Inputs)
	}
	if p.Labels == nil {
		p.Labels = make([]string, p.Inputs)
		for i := range p.Labels {
			p.Labels[i] = "x" + strconv.Itoa(i)
		}
	}
	if p.Output == "" {
		p.Output = "f"
	}
	if declared >= 0 && declared != len(p.Rows) {
		return nil, errors.Wrapf(ErrSyntax, ".p declares %d rows, found %d", declared, len(p.Rows))
	}
	return p, nil
}

func (p *PLA) directive(n int, fields []string, declared *int) (bool, error) {
	arg := func() (int, error) {
		if len(fields) != 2 {
			return 0, lineError(n, "%s takes one argument", fields[0])
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil || v < 0 {
			return 0, lineError(n, "bad count %q", fields[1])
		}
		return v, nil
	}
	switch fields[0] {
	case ".i":
		v, err := arg()
		if err != nil {
			return false, err
		}
		if v == 0 || v > logic.MaxVars {
			return false, errors.Wrapf(ErrUnsupported, "line %d: %d inputs", n, v)
		}
		p.Inputs = v
	case ".o":
		v, err := arg()
		if err != nil {
			return false, err
		}
		if v != 1 {
			return false, errors.Wrapf(ErrUnsupported, "line %d: %d outputs", n, v)
		}
	case ".ilb":
		p.Labels = append([]string(nil), fields[1:]...)
		if p.Inputs != 0 && len(p.Labels) != p.Inputs {
			return false, lineError(n, ".ilb names %d inputs, want %d", len(p.Labels), p.Inputs)
		}
	case ".ob":
		if len(fields) != 2 {
			return false, lineError(n, ".ob must name one output")
		}
		p.Output = fields[1]
	case ".p":
		v, err := arg()
		if err != nil {
			return false, err
		}
		*declared = v
	case ".type":
		if len(fields) != 2 {
			return false, lineError(n, ".type takes one argument")
		}
		switch fields[1] {
		case "f", "r", "fr":
			p.Type = fields[1]
		default:
			return false, errors.Wrapf(ErrUnsupported, "line %d: type %q", n, fields[1])
		}
	case ".e", ".end":
		return true, nil
	default:
		return false, errors.Wrapf(ErrUnsupported, "line %d: directive %s", n, fields[0])
	}
	return false, nil
}

func (p *PLA) row(n int, fields []string) (Row, error) {
	if p.Inputs == 0 {
		return Row{}, lineError(n, "cube before .i")
	}
	// the input and output parts may be written without a space
	if len(fields) == 1 && len(fields[0]) == p.Inputs+1 {
		fields = []string{fields[0][:p.Inputs], fields[0][p.Inputs:]}
	}
	if len(fields) != 2 {
		return Row{}, lineError(n, "want input and output parts")
	}
	if len(fields[0]) != p.Inputs {
		return Row{}, lineError(n, "cube %q has %d inputs, want %d", fields[0], len(fields[0]), p.Inputs)
	}
	in, err := logic.ParseTerm(fields[0])
	if err != nil {
		return Row{}, lineError(n, "%v", err)
	}
	switch fields[1] {
	case "1":
		return Row{Input: in, Output: true}, nil
	case "0":
		return Row{Input: in, Output: false}, nil
	}
	return Row{}, lineError(n, "bad output %q", fields[1])
}

// Values expands the cover into a truth vector. For type f the rows with
// output 1 are the ON-set; for type r they are the OFF-set; for type fr
// output 1 rows are ON, output 0 rows OFF and a point in both is an error.
// Points no row mentions are 0, except under type r where they are 1.
func (p *PLA) Values() ([]bool, error) {
	size := 1 << p.Inputs
	values := make([]bool, size)
	if p.Type == "r" {
		for i := range values {
			values[i] = true
		}
	}
	on := make([]bool, size)
	off := make([]bool, size)
	for _, r := range p.Rows {
		for _, m := range r.Input.Members() {
			switch {
			case p.Type == "r" && r.Output:
				off[m] = true
			case p.Type == "fr" && !r.Output:
				off[m] = true
			case r.Output:
				on[m] = true
			}
		}
	}
	for i := range values {
		if on[i] && off[i] {
			return nil, errors.Wrapf(ErrConflict, "point %0*b", p.Inputs, i)
		}
		switch {
		case on[i]:
			values[i] = true
		case off[i]:
			values[i] = false
		}
	}
	return values, nil
}

// Function builds the function the cover describes, named by its output.
func (p *PLA) Function() (*logic.Function, error) {
	values, err := p.Values()
	if err != nil {
		return nil, err
	}
	return logic.NewFunction(p.Labels, p.Output, values)
}
