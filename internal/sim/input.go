package sim

// CommandKind identifies a player intent.
type CommandKind uint8

const (
	CmdSetPaddleTarget CommandKind = iota
	CmdLaunch
	CmdPause
	CmdResume
)

// Command is a quantized player input. Commands are queued between ticks and
// drained exactly once at the start of the tick they apply to, so identical
// command sequences replay identically regardless of wall-clock arrival time.
type Command struct {
	Kind CommandKind
	// Target is the desired paddle angle for CmdSetPaddleTarget.
	Target float32
}

// maxQueuedCommands bounds the per-tick queue; excess input is dropped
// oldest-first so a stalled renderer cannot grow the queue without limit.
const maxQueuedCommands = 32

// CommandQueue collects commands for the next tick.
type CommandQueue struct {
	pending []Command
}

// Push enqueues a command, evicting the oldest when full.
func (q *CommandQueue) Push(cmd Command) {
	if len(q.pending) >= maxQueuedCommands {
		copy(q.pending, q.pending[1:])
		q.pending = q.pending[:len(q.pending)-1]
	}
	q.pending = append(q.pending, cmd)
}

// Drain returns all pending commands in arrival order and clears the queue.
func (q *CommandQueue) Drain() []Command {
	cmds := q.pending
	q.pending = nil
	return cmds
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int { return len(q.pending) }
