package terrain

import (
	"context"
	"sync"

	"terraforge/internal/heightfield"
	"terraforge/internal/mesher"
)

// meshJob represents a chunk meshing job request
type meshJob struct {
	index int // position in the descriptor list, keeps output order stable
	desc  mesher.Descriptor
}

// meshResult contains the result of one meshing job
type meshResult struct {
	index   int
	buffers *mesher.Buffers
	err     error
}

// meshPool manages goroutines for chunk mesh generation. It is created
// per generation pass, after the height-field barrier, so workers can
// never observe a partially written grid.
type meshPool struct {
	jobQueue chan meshJob
	results  chan meshResult
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mesh  *mesher.Mesher
	field *heightfield.Field
}

// newMeshPool starts workers reading from the job queue.
func newMeshPool(parent context.Context, m *mesher.Mesher, f *heightfield.Field, workers, queueSize int) *meshPool {
	ctx, cancel := context.WithCancel(parent)
	p := &meshPool{
		jobQueue: make(chan meshJob, queueSize),
		results:  make(chan meshResult, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		mesh:     m,
		field:    f,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// submit queues a job, giving up if the pass is cancelled.
func (p *meshPool) submit(job meshJob) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

// worker processes mesh jobs until the queue closes or the pass is
// cancelled. In-flight chunks finish; no new chunk starts after
// cancellation.
func (p *meshPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			b, err := p.mesh.Mesh(p.field, job.desc)
			select {
			case p.results <- meshResult{index: job.index, buffers: b, err: err}:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// shutdown stops the workers and waits for them to exit.
func (p *meshPool) shutdown() {
	p.cancel()
	p.wg.Wait()
}

// run pushes every descriptor through the pool and collects the buffers
// in descriptor order. It is the stage-2 barrier: it returns only when
// every chunk job has completed (or the context is cancelled, in which
// case partial buffers are discarded).
func (p *meshPool) run(descs []mesher.Descriptor) ([]*mesher.Buffers, error) {
	go func() {
		for i, d := range descs {
			p.submit(meshJob{index: i, desc: d})
		}
		close(p.jobQueue)
	}()

	out := make([]*mesher.Buffers, len(descs))
	for range descs {
		select {
		case r := <-p.results:
			if r.err != nil {
				p.shutdown()
				return nil, r.err
			}
			out[r.index] = r.buffers
		case <-p.ctx.Done():
			p.shutdown()
			return nil, p.ctx.Err()
		}
	}
	p.shutdown()
	return out, nil
}
