package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none or only nil errors are provided this function returns nil. If
// exactly one non-nil error is provided it is returned as is.
// Multi errors are flattened so the result never contains nested multi
// errors.
func Append(errs ...error) error {
	var res []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			res = append(res, m.errs...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return &multiErr{errs: res}
	}
}

// multiErr is a list of errors. It does not carry its own ABCI code: the
// code of the first error is used, consistent with the fail-fast approach.
type multiErr struct {
	errs []error
}

var (
	_ coder    = (*multiErr)(nil)
	_ unpacker = (*multiErr)(nil)
)

func (m *multiErr) Error() string {
	if len(m.errs) == 1 {
		return m.errs[0].Error()
	}
	points := make([]string, len(m.errs))
	for i, err := range m.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m.errs), strings.Join(points, "\n\t"))
}

// Unpack returns all contained errors.
func (m *multiErr) Unpack() []error {
	return m.errs
}

// ABCICode returns the error code of the first error or the internal code if
// the first error does not declare one.
func (m *multiErr) ABCICode() uint32 {
	if len(m.errs) == 0 {
		return SuccessABCICode
	}
	return abciCode(m.errs[0])
}

// unpacker is implemented by errors that contain more than one error. It is
// a superset of causer functionality.
type unpacker interface {
	Unpack() []error
}
