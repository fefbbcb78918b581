package store

// Journal accumulates undo closures while a mutation applies its writes. If a
// later step fails, Rollback restores every touched record in reverse order,
// leaving the store exactly as it was before the mutation began.
//
// Journals are used under the store-wide mutation lock, so entries never
// interleave with another writer.
type Journal struct {
	undos []func()
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Record pushes an undo closure onto the journal.
func (j *Journal) Record(undo func()) {
	j.undos = append(j.undos, undo)
}

// Rollback runs all undo closures in reverse order and empties the journal.
func (j *Journal) Rollback() {
	for i := len(j.undos) - 1; i >= 0; i-- {
		j.undos[i]()
	}
	j.undos = nil
}

// RecordUpdate snapshots a record's current state before an update, so
// rollback writes the old value back.
func RecordUpdate[T Record](j *Journal, c *Collection[T], id string) {
	prev, err := c.Get(id)
	if err != nil {
		return
	}
	j.Record(func() { _, _ = c.Update(prev) })
}

// RecordInsert registers that a record was just inserted, so rollback removes
// it again.
func RecordInsert[T Record](j *Journal, c *Collection[T], id string) {
	j.Record(func() { _, _ = c.Remove(id) })
}

// RecordRemove snapshots a record and its position before removal, so
// rollback puts it back where it was.
func RecordRemove[T Record](j *Journal, c *Collection[T], id string) {
	prev, err := c.Get(id)
	if err != nil {
		return
	}
	pos, _ := c.Position(id)
	j.Record(func() { _ = c.Restore(prev, pos) })
}
