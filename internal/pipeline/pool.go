package pipeline

import (
	"runtime"
	"sync"

	"screenpass/internal/story"
)

// Job is one independent document: its units in order and the inputs
// needed to process them.
type Job struct {
	Name       string
	Units      []string
	Characters []story.CharacterProfile
	Seed       uint64
}

type Runner func(job Job) error

// RunDocuments processes independent documents in parallel. Units inside a
// job are the runner's business and stay sequential; documents share no
// state, so any number can run at once.
func RunDocuments(jobs []Job, workers int, fn Runner) []error {
	if len(jobs) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	queue := make(chan Job)
	errs := make(chan error, len(jobs))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if err := fn(job); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}

// Result is what RunJob reports for one document.
type Result struct {
	Name     string
	Outputs  []Output
	Context  story.PersistentContext
	Rejected int
}

// RunJob feeds a job's units through a fresh Document. With stopOnReject
// it stops at the first rejected unit; otherwise a rejected unit is
// recorded and skipped, which mirrors a caller giving up on regeneration.
func (p *Processor) RunJob(job Job, stopOnReject bool) Result {
	doc := NewDocument(p, NewRand(job.Seed), job.Characters)
	res := Result{Name: job.Name}
	for _, u := range job.Units {
		out := doc.Submit(u)
		res.Outputs = append(res.Outputs, out)
		if out.HardReject {
			res.Rejected++
			if stopOnReject {
				break
			}
			doc.Skip()
		}
	}
	res.Context = doc.Context()
	return res
}
