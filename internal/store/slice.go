package store

// Op names one asynchronous operation kind on a resource slice.
type Op string

const (
	OpFetchAll Op = "fetchAll"
	OpFetchOne Op = "fetchOne"
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
)

// Status is the lifecycle position of one operation.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusFulfilled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// AsyncOp is the lifecycle record for one operation on one slice. At breaks
// ordering ties: only the latest dispatched request for an operation may
// apply its result.
type AsyncOp struct {
	Status Status
	Data   any
	Error  string
	At     uint64
}

// slice owns one entity kind's list, selection and operation state.
type slice[T Entity] struct {
	list     []T
	selected *T
	ops      map[Op]AsyncOp
}

func newSlice[T Entity]() slice[T] {
	return slice[T]{ops: make(map[Op]AsyncOp)}
}

// accepts reports whether a terminal result stamped at may still be applied:
// a newer dispatch for the same operation supersedes it.
func (sl *slice[T]) accepts(op Op, at uint64) bool {
	return at >= sl.ops[op].At
}

// dedupeByID drops later duplicates, preserving server response order.
func dedupeByID[T Entity](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		id := item.EntityID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Merge rules. Each runs under the store lock inside a single dispatch.

func (sl *slice[T]) replaceAll(items []T) {
	sl.list = dedupeByID(items)
}

func (sl *slice[T]) upsert(item T) {
	for i, cur := range sl.list {
		if cur.EntityID() == item.EntityID() {
			sl.list[i] = item
			return
		}
	}
	sl.list = append(sl.list, item)
}

func (sl *slice[T]) selectItem(item T) {
	sl.selected = &item
}

func (sl *slice[T]) replace(item T) {
	for i, cur := range sl.list {
		if cur.EntityID() == item.EntityID() {
			sl.list[i] = item
			break
		}
	}
	if sl.selected != nil && (*sl.selected).EntityID() == item.EntityID() {
		sl.selected = &item
	}
}

func (sl *slice[T]) remove(id string) {
	kept := sl.list[:0]
	for _, cur := range sl.list {
		if cur.EntityID() != id {
			kept = append(kept, cur)
		}
	}
	sl.list = kept
	if sl.selected != nil && (*sl.selected).EntityID() == id {
		sl.selected = nil
	}
}
