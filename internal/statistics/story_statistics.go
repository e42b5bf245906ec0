package statistics

import (
	"github.com/at-ishikawa/storybuilder/internal/project"
)

// SubplotStatistics holds scene counts for one subplot lane
type SubplotStatistics struct {
	SubplotID     string
	Name          string
	Color         string
	ScenesCount   int // Scenes filed under the subplot
	InThreadCount int // Of those, scenes promoted into the thread
}

// IntensityStatistics summarizes intensity along the thread
type IntensityStatistics struct {
	Average      float64
	Peak         int
	PeakPosition int // 1-based thread position of the first peak, 0 when the thread is empty
	Climbs       int // Consecutive scenes where intensity rises
	Drops        int // Consecutive scenes where intensity falls
}

// StatisticsResult holds per-subplot and thread-wide statistics
type StatisticsResult struct {
	Subplots      []SubplotStatistics
	ScenesCount   int
	ThreadLength  int
	DanglingCount int // Thread ids without a node
	OrphanCount   int // Nodes whose subplot no longer exists
	Intensity     IntensityStatistics
}

// CalculateStatistics calculates project statistics. Subplots are reported in
// lane order; nodes referencing a missing subplot are counted as orphans.
func CalculateStatistics(subplots []project.Subplot, nodes []project.Node, threadOrder []string) StatisticsResult {
	inThread := make(map[string]struct{}, len(threadOrder))
	for _, id := range threadOrder {
		inThread[id] = struct{}{}
	}

	bySubplot := make(map[string]*SubplotStatistics, len(subplots))
	result := StatisticsResult{
		Subplots:    make([]SubplotStatistics, len(subplots)),
		ScenesCount: len(nodes),
	}
	for i, sp := range subplots {
		result.Subplots[i] = SubplotStatistics{SubplotID: sp.ID, Name: sp.Name, Color: sp.Color}
		bySubplot[sp.ID] = &result.Subplots[i]
	}

	for _, n := range nodes {
		stats, ok := bySubplot[n.SubplotID]
		if !ok {
			result.OrphanCount++
			continue
		}
		stats.ScenesCount++
		if _, ok := inThread[n.ID]; ok {
			stats.InThreadCount++
		}
	}

	scenes := project.Resolve(subplots, nodes, threadOrder)
	result.ThreadLength = len(scenes)
	result.DanglingCount = len(threadOrder) - len(scenes)
	result.Intensity = intensityStatistics(scenes)
	return result
}

func intensityStatistics(scenes []project.Scene) IntensityStatistics {
	var stats IntensityStatistics
	if len(scenes) == 0 {
		return stats
	}

	total := 0
	for i, sc := range scenes {
		v := sc.Node.Intensity
		total += v
		if i == 0 || v > stats.Peak {
			stats.Peak = v
			stats.PeakPosition = sc.Position
		}
		if i == 0 {
			continue
		}
		prev := scenes[i-1].Node.Intensity
		switch {
		case v > prev:
			stats.Climbs++
		case v < prev:
			stats.Drops++
		}
	}
	stats.Average = float64(total) / float64(len(scenes))
	return stats
}
