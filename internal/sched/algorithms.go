package sched

// byArrival ranks every process equally, so the tree falls back to arrival then input order.
func byArrival(*Process) int { return 0 }

// runNonPreemptive dispatches, at every idle moment, the lowest-ranked ready
// process and runs it to completion. FCFS, SJF and non-preemptive priority
// differ only in rank.
func runNonPreemptive(procs []*Process, rank rankFunc) []Segment {
	var (
		clock TickClock
		rec   timelineRecorder
		feed  = newArrivals(procs)
		ready = newReadySet(rank)
	)

	for !feed.empty() || !ready.empty() {
		feed.admit(clock.Now(), ready.push)
		e, ok := ready.pop()
		if !ok {
			clock.IdleUntil(feed.next())
			continue
		}

		start := clock.Now()
		e.proc.markStarted(start)
		clock.Advance(e.proc.RemainingTime)
		rec.record(e.proc.PID, start, clock.Now(), false)
		e.proc.finish(clock.Now())
	}
	return rec.close(&clock)
}

// runPreemptive re-evaluates the ready set at every arrival. The running
// process keeps the core unless a waiting one has a strictly smaller rank.
func runPreemptive(procs []*Process, rank rankFunc) []Segment {
	var (
		clock   TickClock
		rec     timelineRecorder
		feed    = newArrivals(procs)
		ready   = newReadySet(rank)
		current *entry
	)

	for {
		feed.admit(clock.Now(), ready.push)

		if current == nil {
			e, ok := ready.pop()
			if !ok {
				if feed.empty() {
					break
				}
				clock.IdleUntil(feed.next())
				continue
			}
			current = &e
		} else if best, ok := ready.peek(); ok && rank(best.proc) < rank(current.proc) {
			ready.push(*current)
			ready.pop()
			current = &best
		}

		p := current.proc
		p.markStarted(clock.Now())

		// run until completion or the next arrival, whichever comes first
		run := p.RemainingTime
		if !feed.empty() {
			if gap := feed.next() - clock.Now(); gap < run {
				run = gap
			}
		}
		start := clock.Now()
		clock.Advance(run)
		p.RemainingTime -= run
		rec.record(p.PID, start, clock.Now(), true)

		if p.RemainingTime == 0 {
			p.finish(clock.Now())
			current = nil
		}
	}
	return rec.close(&clock)
}

// runRoundRobin grants each dispatch at most quantum ticks. Processes that
// arrive during a slice are queued ahead of the preempted one.
func runRoundRobin(procs []*Process, quantum int) []Segment {
	var (
		clock TickClock
		rec   timelineRecorder
		feed  = newArrivals(procs)
		queue = newFIFO()
	)

	for {
		feed.admit(clock.Now(), queue.push)
		e, ok := queue.pop()
		if !ok {
			if feed.empty() {
				break
			}
			clock.IdleUntil(feed.next())
			continue
		}

		runSlice(&clock, &rec, e.proc, quantum)
		feed.admit(clock.Now(), queue.push)
		if e.proc.RemainingTime > 0 {
			queue.push(e)
		} else {
			e.proc.finish(clock.Now())
		}
	}
	return rec.close(&clock)
}

// runMLFQ services levels in strict priority, round-robin within a level.
// New arrivals enter level 0; a process that uses its whole quantum without
// finishing drops one level, staying at the last level once there.
func runMLFQ(procs []*Process, levels []int) []Segment {
	var (
		clock  TickClock
		rec    timelineRecorder
		feed   = newArrivals(procs)
		queues = make([]*fifo, len(levels))
	)
	for i := range queues {
		queues[i] = newFIFO()
	}
	enterTop := queues[0].push

	for {
		feed.admit(clock.Now(), enterTop)

		level, e, ok := -1, entry{}, false
		for i, q := range queues {
			if e, ok = q.pop(); ok {
				level = i
				break
			}
		}
		if !ok {
			if feed.empty() {
				break
			}
			clock.IdleUntil(feed.next())
			continue
		}

		runSlice(&clock, &rec, e.proc, levels[level])
		feed.admit(clock.Now(), enterTop)
		if e.proc.RemainingTime == 0 {
			e.proc.finish(clock.Now())
			continue
		}
		if level < len(queues)-1 {
			level++
		}
		queues[level].push(e)
	}
	return rec.close(&clock)
}

// runSlice runs p for at most quantum ticks and records the segment.
func runSlice(clock *TickClock, rec *timelineRecorder, p *Process, quantum int) {
	start := clock.Now()
	p.markStarted(start)
	run := min(quantum, p.RemainingTime)
	clock.Advance(run)
	p.RemainingTime -= run
	rec.record(p.PID, start, clock.Now(), false)
}
