package storage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/san-kum/starfield/internal/field"
)

// Sample is one frame of a recorded run.
type Sample struct {
	Frame       int     `json:"frame"`
	Time        float64 `json:"time"`
	Streaks     int     `json:"streaks"`
	MeanOpacity float64 `json:"mean_opacity"`
	Spawned     int     `json:"spawned"`
	Pruned      int     `json:"pruned"`
}

var sampleHeader = []string{"frame", "time", "streaks", "mean_opacity", "spawned", "pruned"}

func (s Sample) record() []string {
	return []string{
		strconv.Itoa(s.Frame),
		strconv.FormatFloat(s.Time, 'f', 6, 64),
		strconv.Itoa(s.Streaks),
		strconv.FormatFloat(s.MeanOpacity, 'f', 6, 64),
		strconv.Itoa(s.Spawned),
		strconv.Itoa(s.Pruned),
	}
}

func parseSample(rec []string) (Sample, error) {
	if len(rec) != len(sampleHeader) {
		return Sample{}, fmt.Errorf("expected %d fields, got %d", len(sampleHeader), len(rec))
	}
	var (
		s   Sample
		err error
	)
	if s.Frame, err = strconv.Atoi(rec[0]); err != nil {
		return s, err
	}
	if s.Time, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return s, err
	}
	if s.Streaks, err = strconv.Atoi(rec[2]); err != nil {
		return s, err
	}
	if s.MeanOpacity, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return s, err
	}
	if s.Spawned, err = strconv.Atoi(rec[4]); err != nil {
		return s, err
	}
	if s.Pruned, err = strconv.Atoi(rec[5]); err != nil {
		return s, err
	}
	return s, nil
}

// Capture drives f headlessly through an Animator for the given number of
// frames at a fixed frame rate. hook, if set, runs after every frame.
func Capture(f *field.Field, frames, fps int, hook func(frame int)) []Sample {
	if fps <= 0 {
		fps = 60
	}
	q := field.NewFrameQueue()
	a := field.NewAnimator(f, q)
	a.Start()
	defer a.Stop()

	step := time.Second / time.Duration(fps)
	start := time.Unix(0, 0)
	samples := make([]Sample, 0, frames)
	for i := 0; i < frames; i++ {
		if !q.Fire(start.Add(time.Duration(i) * step)) {
			break
		}
		st := f.Stats()
		samples = append(samples, Sample{
			Frame:       i,
			Time:        st.Clock,
			Streaks:     st.Streaks,
			MeanOpacity: st.MeanOpacity,
			Spawned:     st.Spawned,
			Pruned:      st.Pruned,
		})
		if hook != nil {
			hook(i)
		}
	}
	return samples
}

// Summarize reduces samples to the headline numbers stored with a run.
func Summarize(samples []Sample) map[string]float64 {
	out := map[string]float64{}
	if len(samples) == 0 {
		return out
	}
	peak, sumStreaks, sumOpacity := 0, 0.0, 0.0
	for _, s := range samples {
		if s.Streaks > peak {
			peak = s.Streaks
		}
		sumStreaks += float64(s.Streaks)
		sumOpacity += s.MeanOpacity
	}
	last := samples[len(samples)-1]
	n := float64(len(samples))
	out["duration"] = last.Time
	out["peak_streaks"] = float64(peak)
	out["mean_streaks"] = sumStreaks / n
	out["mean_opacity"] = sumOpacity / n
	out["spawned"] = float64(last.Spawned)
	out["pruned"] = float64(last.Pruned)
	return out
}
