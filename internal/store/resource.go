package store

// Resource is the typed handle through which one entity kind's slice is
// mutated and read. Mutations are dispatched; reads take the store's read
// lock and return copies.
type Resource[T Entity] struct {
	store *Store
	slice *slice[T]
}

// Begin marks op pending and returns the sequence number stamped on this
// dispatch. An earlier in-flight request for the same op is not cancelled;
// its result will be discarded on arrival because a newer At now owns the op.
func (r Resource[T]) Begin(op Op) uint64 {
	at := r.store.nextAt()
	r.store.Dispatch(pendingAction[T]{slice: r.slice, op: op, at: at})
	return at
}

// ResolveList applies a fetchAll result: the list is replaced wholesale.
func (r Resource[T]) ResolveList(at uint64, items []T) {
	r.store.Dispatch(fulfilledAction[T]{
		slice: r.slice, op: OpFetchAll, at: at, data: items,
		merge: func(sl *slice[T]) { sl.replaceAll(items) },
	})
}

// ResolveOne applies a fetchOne result: upsert by id and select.
func (r Resource[T]) ResolveOne(at uint64, item T) {
	r.store.Dispatch(fulfilledAction[T]{
		slice: r.slice, op: OpFetchOne, at: at, data: item,
		merge: func(sl *slice[T]) { sl.upsert(item); sl.selectItem(item) },
	})
}

// ResolveCreated applies a create result: append (upsert guards against a
// server echoing an id the list already holds).
func (r Resource[T]) ResolveCreated(at uint64, item T) {
	r.store.Dispatch(fulfilledAction[T]{
		slice: r.slice, op: OpCreate, at: at, data: item,
		merge: func(sl *slice[T]) { sl.upsert(item) },
	})
}

// ResolveUpdated applies an update result: replace the matching id, and the
// selection when it matches.
func (r Resource[T]) ResolveUpdated(at uint64, item T) {
	r.store.Dispatch(fulfilledAction[T]{
		slice: r.slice, op: OpUpdate, at: at, data: item,
		merge: func(sl *slice[T]) { sl.replace(item) },
	})
}

// ResolveDeleted applies a delete result: remove by id, clearing the
// selection when it matches.
func (r Resource[T]) ResolveDeleted(at uint64, id string) {
	r.store.Dispatch(fulfilledAction[T]{
		slice: r.slice, op: OpDelete, at: at, data: id,
		merge: func(sl *slice[T]) { sl.remove(id) },
	})
}

// Reject records a terminal failure for op. The list is left unchanged.
func (r Resource[T]) Reject(op Op, at uint64, msg string) {
	r.store.Dispatch(rejectedAction[T]{slice: r.slice, op: op, at: at, msg: msg})
}

// DropSelected clears the selection when it matches id (a 404 on an entity
// the view had selected).
func (r Resource[T]) DropSelected(id string) {
	r.store.Dispatch(dropSelectedAction[T]{slice: r.slice, id: id})
}

// --- Selectors ---

// All returns the slice's list in server order.
func (r Resource[T]) All() []T {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]T, len(r.slice.list))
	copy(out, r.slice.list)
	return out
}

// ByID returns the entity with the given id.
func (r Resource[T]) ByID(id string) (T, bool) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, item := range r.slice.list {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Selected returns the currently selected entity.
func (r Resource[T]) Selected() (T, bool) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if r.slice.selected == nil {
		var zero T
		return zero, false
	}
	return *r.slice.selected, true
}

// OpState returns the lifecycle record for op.
func (r Resource[T]) OpState(op Op) AsyncOp {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.slice.ops[op]
}

// LastError returns the error of the most recently stamped rejected
// operation, or "".
func (r Resource[T]) LastError() string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var latest AsyncOp
	for _, rec := range r.slice.ops {
		if rec.Status == StatusRejected && rec.At >= latest.At {
			latest = rec
		}
	}
	return latest.Error
}

// --- Actions ---

type pendingAction[T Entity] struct {
	slice *slice[T]
	op    Op
	at    uint64
}

func (a pendingAction[T]) apply(*Store) {
	a.slice.ops[a.op] = AsyncOp{Status: StatusPending, At: a.at}
}

type fulfilledAction[T Entity] struct {
	slice *slice[T]
	op    Op
	at    uint64
	data  any
	merge func(*slice[T])
}

func (a fulfilledAction[T]) apply(*Store) {
	if !a.slice.accepts(a.op, a.at) {
		return
	}
	a.merge(a.slice)
	a.slice.ops[a.op] = AsyncOp{Status: StatusFulfilled, Data: a.data, At: a.at}
}

type rejectedAction[T Entity] struct {
	slice *slice[T]
	op    Op
	at    uint64
	msg   string
}

func (a rejectedAction[T]) apply(*Store) {
	if !a.slice.accepts(a.op, a.at) {
		return
	}
	a.slice.ops[a.op] = AsyncOp{Status: StatusRejected, Error: a.msg, At: a.at}
}

type dropSelectedAction[T Entity] struct {
	slice *slice[T]
	id    string
}

func (a dropSelectedAction[T]) apply(*Store) {
	if a.slice.selected != nil && (*a.slice.selected).EntityID() == a.id {
		a.slice.selected = nil
	}
}
