package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-universe/model"
	"github.com/sheikhrachel/go-universe/utils"
)

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, logger model.Logger) (
	*model.Universe,
	*model.TerminalRenderer,
	*model.History,
	*utils.Stats,
	error,
) {
	u, err := newUniverse(config, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	renderer := model.NewTerminalRenderer(os.Stdout, config.Run.Color)
	history := model.NewHistory(config.Run.StagnationThreshold + 3)
	stats := utils.NewStats()

	return u, renderer, history, stats, nil
}

// newUniverse builds the universe, then imports a state file or stamps the
// configured patterns on top of the seed
func newUniverse(config utils.Config, logger model.Logger) (*model.Universe, error) {
	opts, err := config.UniverseOptions(logger)
	if err != nil {
		return nil, err
	}

	u, err := model.NewWithOptions(opts)
	if err != nil {
		return nil, err
	}

	if config.Run.StateFile != "" {
		if err = importState(u, config.Run.StateFile); err != nil {
			return nil, err
		}
		return u, nil
	}

	stampPatterns(u, config.Patterns)
	return u, nil
}

func stampPatterns(u *model.Universe, patterns utils.PatternConfig) {
	for _, p := range patterns.Gliders {
		u.AddGlider(p.Row, p.Col)
	}
	for _, p := range patterns.Pulsars {
		u.AddPulsar(p.Row, p.Col)
	}
}

// importState loads a packed bitmap written by dumpState
func importState(u *model.Universe, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "[importState] failed to read file: %+v", filename)
	}
	if err = u.SetState(data); err != nil {
		return errors.Wrapf(err, "[importState] failed to import file: %+v", filename)
	}
	return nil
}

// dumpState writes the current generation as a packed bitmap
func dumpState(u *model.Universe, filename string) error {
	if err := os.WriteFile(filename, u.State(), 0o644); err != nil {
		return errors.Wrapf(err, "[dumpState] failed to write file: %+v", filename)
	}
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, u *model.Universe) {
	fmt.Printf("Seeding: %s | Workers: %d | Auto restart: %v\n",
		config.Universe.SeedStrategy, config.Universe.Workers, config.Run.AutoRestart)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		u.Width(), u.Height(), u.LiveCells())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// updateGameState updates the game state and returns status information
func updateGameState(
	u *model.Universe,
	history *model.History,
	lastFrameTime time.Time,
	stats *utils.Stats,
	generation int,
) (int, float64, string, bool) {
	livingCells := u.LiveCells()
	density := float64(livingCells) / float64(u.Width()*u.Height()) * 100

	stats.Update(generation, livingCells, time.Since(lastFrameTime))

	isStagnant := history.Observe(u)

	status := "Active"
	if isStagnant {
		status = fmt.Sprintf("Stagnant (generation %d)", u.Generation())
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(
	generation, livingCells int,
	density float64,
	status string,
	u *model.Universe,
	stats *utils.Stats,
) {
	fmt.Printf("Gen: %d | Since seed: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, u.Generation(), livingCells, density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())
	fmt.Println()
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.Run.StagnationThreshold > 0 && stagnantCount >= config.Run.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame re-seeds the universe in place
func restartGame(u *model.Universe, history *model.History, config utils.Config) {
	fmt.Printf("\n🔄 Restarting...\n")
	time.Sleep(1 * time.Second)

	u.Randomise()
	stampPatterns(u, config.Patterns)
	history.Reset()

	fmt.Printf("✨ New seed loaded! Living cells: %d\n", u.LiveCells())
	time.Sleep(2 * time.Second)
}
