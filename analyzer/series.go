package analyzer

import (
	"cmp"
	"slices"
	"time"

	"github.com/ayoisaiah/presence/internal/models"
	"github.com/ayoisaiah/presence/internal/timeutil"
)

// ActivityTimeline counts events per wall-clock minute, from the minute of
// the first event to the minute of the last. Minutes without events are
// included with a zero count.
func (a *Analyzer) ActivityTimeline() ([]models.ActivityBucket, error) {
	events, err := a.sortedEvents()
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	// buckets are cut on absolute time so that a repeated wall-clock hour
	// cannot move them
	start := timeutil.RoundToMinute(events[0].Timestamp)
	end := timeutil.RoundToMinute(events[len(events)-1].Timestamp)

	buckets := make([]models.ActivityBucket, int(end.Sub(start)/time.Minute)+1)
	for i := range buckets {
		buckets[i].Start = start.Add(time.Duration(i) * time.Minute)
	}

	for i := range events {
		j := int(events[i].Timestamp.Sub(start) / time.Minute)
		buckets[j].Count++
	}

	return buckets, nil
}

// DensityGrid bins heatmap points into square cells of cell pixels and
// returns the occupied cells, densest first. A non-positive cell size selects
// 100px.
func (a *Analyzer) DensityGrid(cell int) ([]models.DensityCell, error) {
	if cell <= 0 {
		cell = defaultCellSize
	}

	points, err := a.HeatmapData()
	if err != nil {
		return nil, err
	}

	index := make(map[models.Point]int)

	var cells []models.DensityCell

	for _, p := range points {
		key := models.Point{X: floorTo(p.X, cell), Y: floorTo(p.Y, cell)}

		j, ok := index[key]
		if !ok {
			j = len(cells)
			index[key] = j
			cells = append(cells, models.DensityCell{X: key.X, Y: key.Y})
		}

		cells[j].Count++
	}

	slices.SortFunc(cells, func(x, y models.DensityCell) int {
		return cmp.Or(
			cmp.Compare(y.Count, x.Count),
			cmp.Compare(x.Y, y.Y),
			cmp.Compare(x.X, y.X),
		)
	})

	return cells, nil
}

// floorTo rounds v down to a multiple of step, also for negative v on
// multi-monitor layouts.
func floorTo(v, step int) int {
	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}

	return q * step
}
