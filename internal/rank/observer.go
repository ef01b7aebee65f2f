package rank

// Observer receives progress notifications from Engine.Compute. It replaces
// ad-hoc debug printing: the engine itself never writes output.
//
// The Vector passed to IterationDone and ComputeFinished is owned by the
// engine. Observers must not modify it and must copy it if they keep it.
type Observer interface {
	ComputeStarted(nodes, edges, iterations int)
	IterationDone(iteration int, ranks Vector)
	ComputeFinished(ranks Vector)
}

// Observers fans notifications out to every non-nil member in order.
type Observers []Observer

// ComputeStarted forwards the start notification to every member.
func (obs Observers) ComputeStarted(nodes, edges, iterations int) {
	for _, o := range obs {
		if o != nil {
			o.ComputeStarted(nodes, edges, iterations)
		}
	}
}

// IterationDone forwards the finished iteration to every member.
func (obs Observers) IterationDone(iteration int, ranks Vector) {
	for _, o := range obs {
		if o != nil {
			o.IterationDone(iteration, ranks)
		}
	}
}

// ComputeFinished forwards the final vector to every member.
func (obs Observers) ComputeFinished(ranks Vector) {
	for _, o := range obs {
		if o != nil {
			o.ComputeFinished(ranks)
		}
	}
}

// nopObserver is used when Options.Observer is nil.
type nopObserver struct{}

func (nopObserver) ComputeStarted(int, int, int) {}
func (nopObserver) IterationDone(int, Vector)    {}
func (nopObserver) ComputeFinished(Vector)       {}
