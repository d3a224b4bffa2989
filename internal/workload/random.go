package workload

import (
	"fmt"
	"math/rand/v2"

	"schedsim/internal/sched"
)

// Ranges used for generated processes.
const (
	MaxArrival  = 10
	MaxBurst    = 10
	MaxPriority = 5
)

// Random returns n processes P1..Pn with arrival in [0,10], burst in [1,10]
// and priority in [0,5]. n == 0 draws a count in [3,10]. The same seed always
// yields the same workload.
func Random(n int, seed uint64) []*sched.Process {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	if n <= 0 {
		n = 3 + rng.IntN(8)
	}

	procs := make([]*sched.Process, n)
	for i := range procs {
		p, err := sched.NewProcess(
			fmt.Sprintf("P%d", i+1),
			rng.IntN(MaxArrival+1),
			1+rng.IntN(MaxBurst),
			rng.IntN(MaxPriority+1),
		)
		if err != nil {
			// ranges above are always valid
			panic(err)
		}
		procs[i] = p
	}
	return procs
}
