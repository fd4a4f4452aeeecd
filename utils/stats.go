package utils

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	Restarts             int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Summary formats the final stats with grouped digits
func (s *Stats) Summary() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d generations in %.1f seconds, %d restarts | %.1f gen/sec, %.1f avg population",
		s.TotalGenerations, time.Since(s.StartTime).Seconds(), s.Restarts,
		s.GenerationsPerSecond, s.AveragePopulation)
}
