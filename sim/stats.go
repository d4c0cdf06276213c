package sim

// NoTime is reported for min/max/avg time when nobody completed a trip.
const NoTime = -1

// Stats is the finalized result of one run.
type Stats struct {
	NumIterations   int `json:"num_iterations"`
	TotalPeople     int `json:"total_people"`
	PeopleCompleted int `json:"people_completed"`
	MaxTime         int `json:"max_time"`
	MinTime         int `json:"min_time"`
	AvgTime         int `json:"avg_time"`
	TotalTime       int `json:"total_time"`
}

// Map returns the run result keyed the way reports and the API expose it.
func (s Stats) Map() map[string]int {
	return map[string]int{
		"num_iterations":   s.NumIterations,
		"total_people":     s.TotalPeople,
		"people_completed": s.PeopleCompleted,
		"max_time":         s.MaxTime,
		"min_time":         s.MinTime,
		"avg_time":         s.AvgTime,
	}
}

// statsAccumulator keeps running counters during a run.
type statsAccumulator struct {
	totalPeople int
	completed   int
	maxTime     int
	minTime     int
	totalTime   int
}

func newStatsAccumulator() *statsAccumulator {
	return &statsAccumulator{maxTime: NoTime, minTime: NoTime}
}

func (a *statsAccumulator) recordArrivals(n int) {
	a.totalPeople += n
}

func (a *statsAccumulator) recordCompletion(waitTime int) {
	if a.completed == 0 || waitTime > a.maxTime {
		a.maxTime = waitTime
	}
	if a.completed == 0 || waitTime < a.minTime {
		a.minTime = waitTime
	}
	a.totalTime += waitTime
	a.completed++
}

// finalize resolves the average; the time fields stay NoTime without completions.
func (a *statsAccumulator) finalize(rounds int) Stats {
	s := Stats{
		NumIterations:   rounds,
		TotalPeople:     a.totalPeople,
		PeopleCompleted: a.completed,
		MaxTime:         NoTime,
		MinTime:         NoTime,
		AvgTime:         NoTime,
		TotalTime:       a.totalTime,
	}
	if a.completed > 0 {
		s.MaxTime = a.maxTime
		s.MinTime = a.minTime
		s.AvgTime = a.totalTime / a.completed
	}
	return s
}
