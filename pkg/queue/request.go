// Package queue implements the pending field-mutation queue and its
// garbage list: an ordered FIFO of requests awaiting the next outbound
// frame, plus read-your-writes coalescing so a GET issued after a
// pending SET on the same (field, index) is satisfied without a round
// trip.
package queue

import (
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
)

// Op is the kind of mutation or fetch a Request records.
type Op uint8

const (
	OpGet Op = iota
	OpSet
	OpImport
	OpImportFromString
	OpRemove
)

// Request records an intended mutation or fetch against one field.
// Index is -1 for SF operations; for MF it is the already-resolved,
// non-negative position. IsString marks that Data (or Import)
// owns a string buffer that must outlive frame emission — drained via
// the garbage list rather than freed immediately.
type Request struct {
	Op     Op
	Field  handle.FieldRef
	Index  int32
	Data   fieldvalue.Scalar // SET/INSERT payload
	Import string            // IMPORT/IMPORT_FROM_STRING payload (filename or node description)

	IsString bool
}

// computeIsString resolves the is_string flag for a request. An
// earlier reference implementation computed this via an assignment
// instead of an equality test for the `action == IMPORT && type ==
// MF_NODE` clause; this is implemented as the intended equality
// comparison: importing into an MF_NODE field always carries a string
// payload (the filename or textual node description), in addition to
// the obvious string-kind and IMPORT_FROM_STRING cases.
func computeIsString(op Op, fieldType fieldvalue.Type) bool {
	switch op {
	case OpImportFromString:
		return true
	case OpImport:
		return fieldType.MF && fieldType.Kind == fieldvalue.KindNode
	case OpSet:
		return fieldType.Kind == fieldvalue.KindString
	default:
		return false
	}
}
