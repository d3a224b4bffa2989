package sched

import (
	"sort"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// entry pairs a process with its position in the input sequence.
type entry struct {
	proc  *Process
	index int
}

// nodeKey is used as a key in the red-black tree.
// rank is the algorithm's ordering key (burst, remaining time or priority);
// arrival and index break ties.
type nodeKey struct {
	rank    int
	arrival int
	index   int
}

// cmpKey implements the Comparator for red-black tree ordering.
func cmpKey(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.rank < kb.rank:
		return -1
	case ka.rank > kb.rank:
		return 1
	case ka.arrival < kb.arrival:
		return -1
	case ka.arrival > kb.arrival:
		return 1
	case ka.index < kb.index:
		return -1
	case ka.index > kb.index:
		return 1
	default:
		return 0
	}
}

// rankFunc extracts the ordering key of a ready process.
type rankFunc func(p *Process) int

func byBurst(p *Process) int     { return p.BurstTime }
func byRemaining(p *Process) int { return p.RemainingTime }
func byPriority(p *Process) int  { return p.Priority }

// readySet is an ordered set of ready processes, smallest rank first.
type readySet struct {
	rank rankFunc
	rbt  *redblacktree.Tree
}

func newReadySet(rank rankFunc) *readySet {
	return &readySet{rank: rank, rbt: redblacktree.NewWith(cmpKey)}
}

func (s *readySet) key(e entry) nodeKey {
	return nodeKey{rank: s.rank(e.proc), arrival: e.proc.ArrivalTime, index: e.index}
}

func (s *readySet) push(e entry) { s.rbt.Put(s.key(e), e) }

func (s *readySet) empty() bool { return s.rbt.Empty() }

// peek returns the best ready entry without removing it.
func (s *readySet) peek() (entry, bool) {
	node := s.rbt.Left()
	if node == nil {
		return entry{}, false
	}
	return node.Value.(entry), true
}

// pop removes and returns the best ready entry.
func (s *readySet) pop() (entry, bool) {
	node := s.rbt.Left()
	if node == nil {
		return entry{}, false
	}
	s.rbt.Remove(node.Key)
	return node.Value.(entry), true
}

// fifo is a plain FIFO ready queue.
type fifo struct {
	q *linkedlistqueue.Queue
}

func newFIFO() *fifo { return &fifo{q: linkedlistqueue.New()} }

func (f *fifo) push(e entry) { f.q.Enqueue(e) }

func (f *fifo) empty() bool { return f.q.Empty() }

func (f *fifo) pop() (entry, bool) {
	v, ok := f.q.Dequeue()
	if !ok {
		return entry{}, false
	}
	return v.(entry), true
}

// arrivals feeds processes into a ready structure in arrival order,
// ties kept in input order.
type arrivals struct {
	pending []entry
}

func newArrivals(procs []*Process) *arrivals {
	pending := make([]entry, len(procs))
	for i, p := range procs {
		pending[i] = entry{proc: p, index: i}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].proc.ArrivalTime < pending[j].proc.ArrivalTime
	})
	return &arrivals{pending: pending}
}

func (a *arrivals) empty() bool { return len(a.pending) == 0 }

// next returns the arrival tick of the earliest pending process.
func (a *arrivals) next() int { return a.pending[0].proc.ArrivalTime }

// admit hands every process with arrival <= t to push, in order.
func (a *arrivals) admit(t int, push func(entry)) {
	for len(a.pending) > 0 && a.pending[0].proc.ArrivalTime <= t {
		push(a.pending[0])
		a.pending = a.pending[1:]
	}
}
