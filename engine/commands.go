package engine

// Deleter is anything entries can be deleted from by handle. *Pool[T]
// satisfies it.
type Deleter interface {
	Delete(Handle) bool
}

// Commands buffers structural changes made while systems iterate pools.
// The Scheduler flushes the buffer once every system has run, so a system
// never removes an entry out from under an iterator.
type Commands struct {
	deletes []deleteCommand
	spawns  []func()
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type deleteCommand struct {
	target Deleter
	handle Handle
}

// Delete queues removal of h from target. Queuing the same handle more than
// once is fine: later deletions see a stale handle and do nothing.
func (c *Commands) Delete(target Deleter, h Handle) {
	c.deletes = append(c.deletes, deleteCommand{target: target, handle: h})
}

// Defer queues a function to run after deletions and spawns.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues insertion of item into pool.
func Spawn[T any](c *Commands, pool *Pool[T], item T) {
	c.spawns = append(c.spawns, func() {
		pool.Spawn(item)
	})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.deletes) + len(c.spawns) + len(c.defers)
}

// Flush applies deletions, then spawns, then deferred functions, and resets
// the buffer. It returns how many entries were actually deleted.
func (c *Commands) Flush() int {
	deleted := 0
	for _, cmd := range c.deletes {
		if cmd.target.Delete(cmd.handle) {
			deleted++
		}
	}

	for _, spawn := range c.spawns {
		spawn()
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.deletes)
	clear(c.spawns)
	clear(c.defers)
	c.deletes = c.deletes[:0]
	c.spawns = c.spawns[:0]
	c.defers = c.defers[:0]

	return deleted
}
