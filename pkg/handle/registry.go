package handle

import (
	"strings"
	"sync"
)

type nodeSlot struct {
	node       Node
	generation uint32
	alive      bool
}

type fieldSlot struct {
	field      Field
	generation uint32
	alive      bool
}

type fieldKey struct {
	nodeID int32
	name   string
}

// Registry holds every live node and field handle. Its methods are safe
// to call concurrently (guarded by an internal mutex matching the
// donor's registry discipline) but in normal operation are only ever
// called while the caller already holds the supervisor step lock, so
// contention on this mutex should never be observed.
type Registry struct {
	mu sync.RWMutex

	nodeSlots    []nodeSlot
	nodeFree     []uint32
	nodeByID     map[int32]NodeRef
	nodeByTag    map[int32]NodeRef

	fieldSlots []fieldSlot
	fieldFree  []uint32
	fieldByKey map[fieldKey]FieldRef
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodeByID:   make(map[int32]NodeRef),
		nodeByTag:  make(map[int32]NodeRef),
		fieldByKey: make(map[fieldKey]FieldRef),
	}
}

// DefNameOf extracts the effective DEF name from a dotted DEF-path
// expression: the substring after the last '.'. A path with no '.'
// returns itself unchanged. Preserves the "last segment wins" rule.
func DefNameOf(path string) string {
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// FindNodeByID returns the live node handle for id, if any.
func (r *Registry) FindNodeByID(id int32) (NodeRef, *Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.nodeByID[id]
	if !ok {
		return NodeRef{}, nil, false
	}
	return ref, &r.nodeSlots[ref.index].node, true
}

// FindNodeByDef matches a node whose DEF name equals def and whose
// parent-PROTO scope matches parentProto: matches iff
// handle.parent_proto == parent_proto AND (parent_proto set OR
// !handle.is_proto_internal) AND DEF name equals the query.
func (r *Registry) FindNodeByDef(def string, parentProto NodeRef, hasParentProto bool) (NodeRef, *Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.nodeSlots {
		s := &r.nodeSlots[i]
		if !s.alive || s.node.DEFName != def {
			continue
		}
		if s.node.HasParentProto != hasParentProto {
			continue
		}
		if hasParentProto && s.node.ParentProto != parentProto {
			continue
		}
		if !hasParentProto && s.node.IsProtoInternal {
			continue
		}
		ref := NodeRef{index: uint32(i), generation: s.generation}
		return ref, &s.node, true
	}
	return NodeRef{}, nil, false
}

// FindNodeByTag returns the node wrapping the device with the given tag.
func (r *Registry) FindNodeByTag(tag int32) (NodeRef, *Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.nodeByTag[tag]
	if !ok {
		return NodeRef{}, nil, false
	}
	return ref, &r.nodeSlots[ref.index].node, true
}

// IsNodeRefValid reports whether ref still identifies a live slot.
func (r *Registry) IsNodeRefValid(ref NodeRef) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isNodeRefValidLocked(ref)
}

func (r *Registry) isNodeRefValidLocked(ref NodeRef) bool {
	if !ref.Valid() || int(ref.index) >= len(r.nodeSlots) {
		return false
	}
	s := &r.nodeSlots[ref.index]
	return s.alive && s.generation == ref.generation
}

// Node dereferences ref, returning nil if stale.
func (r *Registry) Node(ref NodeRef) *Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.isNodeRefValidLocked(ref) {
		return nil
	}
	return &r.nodeSlots[ref.index].node
}

// AddNode inserts or refreshes a node handle. Idempotent on id: if a
// live handle for id already exists, only its DEF name is refreshed
// (after extracting the last dotted segment) and the existing ref is
// returned; otherwise a new slot is allocated.
func (r *Registry) AddNode(n Node) NodeRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.DEFName = DefNameOf(n.DEFName)

	if existing, ok := r.nodeByID[n.ID]; ok {
		slot := &r.nodeSlots[existing.index]
		if slot.alive {
			slot.node.DEFName = n.DEFName
			return existing
		}
	}

	var idx uint32
	if len(r.nodeFree) > 0 {
		idx = r.nodeFree[len(r.nodeFree)-1]
		r.nodeFree = r.nodeFree[:len(r.nodeFree)-1]
		r.nodeSlots[idx].generation++
		r.nodeSlots[idx].node = n
		r.nodeSlots[idx].alive = true
	} else {
		idx = uint32(len(r.nodeSlots))
		r.nodeSlots = append(r.nodeSlots, nodeSlot{node: n, generation: 1, alive: true})
	}

	ref := NodeRef{index: idx, generation: r.nodeSlots[idx].generation}
	r.nodeByID[n.ID] = ref
	if n.HasDeviceTag {
		r.nodeByTag[n.DeviceTag] = ref
	}
	return ref
}

// RemoveNode unlinks the node with the given id: the slot is freed and
// every other live node whose ParentID equals id has its ParentID reset
// to -1.
func (r *Registry) RemoveNode(id int32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.nodeByID[id]
	if !ok || !r.nodeSlots[ref.index].alive {
		return false
	}

	slot := &r.nodeSlots[ref.index]
	if slot.node.HasDeviceTag {
		delete(r.nodeByTag, slot.node.DeviceTag)
	}
	slot.alive = false
	slot.node = Node{}
	delete(r.nodeByID, id)
	r.nodeFree = append(r.nodeFree, ref.index)

	for i := range r.nodeSlots {
		s := &r.nodeSlots[i]
		if s.alive && s.node.ParentID == id {
			s.node.ParentID = -1
		}
	}
	return true
}

// RemoveInternalProtoEntries purges every node and field handle whose
// IsProtoInternal flag is set, in response to the NODE_REGENERATED
// opcode.
func (r *Registry) RemoveInternalProtoEntries() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.nodeSlots {
		s := &r.nodeSlots[i]
		if s.alive && s.node.IsProtoInternal {
			if s.node.HasDeviceTag {
				delete(r.nodeByTag, s.node.DeviceTag)
			}
			delete(r.nodeByID, s.node.ID)
			s.alive = false
			s.node = Node{}
			r.nodeFree = append(r.nodeFree, uint32(i))
		}
	}
	for i := range r.fieldSlots {
		s := &r.fieldSlots[i]
		if s.alive && s.field.IsProtoInternal {
			delete(r.fieldByKey, fieldKey{s.field.NodeID, s.field.Name})
			s.alive = false
			s.field = Field{}
			r.fieldFree = append(r.fieldFree, uint32(i))
		}
	}
}

// FindFieldByName returns the existing field handle for (nodeID, name),
// if any.
func (r *Registry) FindFieldByName(nodeID int32, name string) (FieldRef, *Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.fieldByKey[fieldKey{nodeID, name}]
	if !ok {
		return FieldRef{}, nil, false
	}
	return ref, &r.fieldSlots[ref.index].field, true
}

// IsFieldRefValid reports whether ref still identifies a live slot.
func (r *Registry) IsFieldRefValid(ref FieldRef) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !ref.Valid() || int(ref.index) >= len(r.fieldSlots) {
		return false
	}
	s := &r.fieldSlots[ref.index]
	return s.alive && s.generation == ref.generation
}

// Field dereferences ref, returning nil if stale.
func (r *Registry) Field(ref FieldRef) *Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !ref.Valid() || int(ref.index) >= len(r.fieldSlots) {
		return nil
	}
	s := &r.fieldSlots[ref.index]
	if !s.alive || s.generation != ref.generation {
		return nil
	}
	return &s.field
}

// FindFieldByID returns the live field handle keyed by the server-
// assigned (node id, field id) pair, used by the frame reader to
// reconcile replies that carry a field id rather than a name (e.g.
// FIELD_INSERT_VALUE). Linear scan: field counts per node are small.
func (r *Registry) FindFieldByID(nodeID, fieldID int32) (FieldRef, *Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.fieldSlots {
		s := &r.fieldSlots[i]
		if s.alive && s.field.NodeID == nodeID && s.field.FieldID == fieldID {
			ref := FieldRef{index: uint32(i), generation: s.generation}
			return ref, &s.field, true
		}
	}
	return FieldRef{}, nil, false
}

// AddField inserts a field handle. At most one field handle exists per
// (node_id, name); a second resolution of the same name returns the
// existing ref.
func (r *Registry) AddField(f Field) FieldRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fieldKey{f.NodeID, f.Name}
	if existing, ok := r.fieldByKey[key]; ok && r.fieldSlots[existing.index].alive {
		return existing
	}

	var idx uint32
	if len(r.fieldFree) > 0 {
		idx = r.fieldFree[len(r.fieldFree)-1]
		r.fieldFree = r.fieldFree[:len(r.fieldFree)-1]
		r.fieldSlots[idx].generation++
		r.fieldSlots[idx].field = f
		r.fieldSlots[idx].alive = true
	} else {
		idx = uint32(len(r.fieldSlots))
		r.fieldSlots = append(r.fieldSlots, fieldSlot{field: f, generation: 1, alive: true})
	}

	ref := FieldRef{index: idx, generation: r.fieldSlots[idx].generation}
	r.fieldByKey[key] = ref
	return ref
}
