package pipeline

import "fmt"

// Per-item time estimates, in seconds, for the up-front ETA printed before
// the first wave. They come from observed averages over public
// subscription lists and only need to be right within a factor of two to
// make the ETA useful.
const (
	estURLCheckTime = 0.15
	estFetchTime    = 0.4
	estParseTime    = 0.2
	estNodeTime     = 0.1

	// estNodesPerSub is the assumed node yield of one subscription.
	estNodesPerSub = 50.0

	// estSurvivalRate is the assumed fraction of URLs that probe as
	// working and continue into later stages.
	estSurvivalRate = 0.7
)

// estimateTotalTime predicts the total scan duration and the portion spent
// before node testing, both in seconds, for the given URL count and worker
// caps.
func estimateTotalTime(numURLs, ioWorkers, parseWorkers int) (total, preNode float64) {
	n := float64(numURLs)
	urlPhase := n * estURLCheckTime / float64(ioWorkers)
	fetchPhase := n * estSurvivalRate * estFetchTime / float64(ioWorkers)
	parsePhase := n * estSurvivalRate * estParseTime / float64(parseWorkers)
	nodePhase := n * estSurvivalRate * estNodesPerSub * estNodeTime / float64(ioWorkers)

	preNode = urlPhase + fetchPhase + parsePhase
	return preNode + nodePhase, preNode
}

// formatDuration renders a second count in a compact human form:
// "45s", "3m 20s", or "2h 5m".
func formatDuration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.0fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.0fm %.0fs", seconds/60, float64(int(seconds)%60))
	default:
		return fmt.Sprintf("%.0fh %.0fm", seconds/3600, float64(int(seconds)%3600)/60)
	}
}
