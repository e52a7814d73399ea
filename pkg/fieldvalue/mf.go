package fieldvalue

// MF is the multi-valued form of a field: a homogeneous slice of Scalar
// elements all sharing Kind. Insert/remove mutate the slice directly;
// the owning field handle is responsible for keeping Count in sync.
type MF struct {
	Kind  Kind
	Elems []Scalar
}

// NewMF returns an empty MF container for kind.
func NewMF(kind Kind) MF {
	return MF{Kind: kind}
}

// Count returns the number of elements currently held.
func (m MF) Count() int32 {
	return int32(len(m.Elems))
}

// At returns the element at the resolved, non-negative index. Callers
// must resolve negative indices via ResolveMFIndex first.
func (m MF) At(index int32) Scalar {
	return m.Elems[index]
}

// Set overwrites the element at the resolved index.
func (m *MF) Set(index int32, v Scalar) {
	m.Elems[index] = v
}

// Insert inserts v before the resolved index, shifting subsequent
// elements right. index == Count() appends.
func (m *MF) Insert(index int32, v Scalar) {
	m.Elems = append(m.Elems, Scalar{})
	copy(m.Elems[index+1:], m.Elems[index:])
	m.Elems[index] = v
}

// Remove deletes the element at the resolved index.
func (m *MF) Remove(index int32) {
	m.Elems = append(m.Elems[:index], m.Elems[index+1:]...)
}
