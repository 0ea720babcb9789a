package kmain

import "rvos/kernel/sbi"

// numWorkers is the number of demo processes spawned at boot.
const numWorkers = 2

// putcharFn is replaced by tests.
var putcharFn = sbi.Putchar

func procA() { runWorker('A') }

func procB() { runWorker('B') }

// runWorker prints ch and yields, forever.
func runWorker(ch byte) {
	for {
		putcharFn(ch)
		sched.Yield()
		delay()
	}
}
