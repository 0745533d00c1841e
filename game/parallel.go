package game

import (
	"fmt"
	"math/rand"
	"sync"
)

// stepChunk is a contiguous range of slots for a worker to step.
type stepChunk struct {
	start, end int
}

// parallelState holds the persistent worker pool used to step large
// fields. Each worker has its own RNG for respawns.
type parallelState struct {
	numWorkers int
	rngs       []*rand.Rand
	panics     []any

	// Worker pool channels
	workChan chan stepChunk // sends work to workers
	doneChan chan int       // workers signal completion with their id
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(numWorkers int, seed int64) *parallelState {
	rngs := make([]*rand.Rand, numWorkers)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewSource(seed + int64(i) + 1))
	}
	return &parallelState{
		numWorkers: numWorkers,
		rngs:       rngs,
		panics:     make([]any, numWorkers),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan stepChunk, p.numWorkers)
	p.doneChan = make(chan int, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game, workerID int) {
	defer p.wg.Done()
	rng := p.rngs[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.run(g, chunk, rng, workerID)
			p.doneChan <- workerID
		}
	}
}

// run steps one chunk, capturing a panic so the dispatcher can re-raise
// it on the ticking goroutine.
func (p *parallelState) run(g *Game, chunk stepChunk, rng *rand.Rand, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			p.panics[workerID] = r
		}
	}()
	g.stepRange(chunk.start, chunk.end, rng)
}

// stepParallel splits [0, n) into contiguous chunks and steps them on the
// worker pool. Draw records land in slot order regardless of scheduling.
func (g *Game) stepParallel(n int) {
	p := g.parallel
	if !p.running {
		p.startWorkers(g)
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	// Dispatch chunks to workers
	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- stepChunk{start: start, end: end}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	var failed any
	for i := 0; i < chunksDispatched; i++ {
		id := <-p.doneChan
		if r := p.panics[id]; r != nil {
			p.panics[id] = nil
			failed = r
		}
	}
	if failed != nil {
		panic(fmt.Sprintf("step worker: %v", failed))
	}
}
