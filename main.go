package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integrii/flaggy"

	"github.com/sheikhrachel/go-universe/utils"
	"github.com/sheikhrachel/go-universe/view"
)

const defaultConfigFile = "config.json"

// cliFlags holds command line overrides. Zero values leave the config alone.
type cliFlags struct {
	configFile  string
	width       uint32
	height      uint32
	seed        int64
	mode        string
	generations int
	workers     int
	interval    time.Duration
	interactive bool
	stateFile   string
	dumpFile    string
}

func main() {
	logger := log.New(os.Stderr, "gol: ", log.LstdFlags)

	flags := parseFlags()
	config, err := loadConfig(flags.configFile)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if err = utils.ApplyEnv(&config); err != nil {
		logger.Fatalf("%v", err)
	}
	applyFlags(&config, flags)
	if err = config.Validate(); err != nil {
		logger.Fatalf("%v", err)
	}

	if config.Run.Interactive {
		// the console owns the terminal, keep the construction line out of it
		u, err := newUniverse(config, nil)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		console, err := view.NewConsole(u, config)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		if err = console.Start(); err != nil {
			logger.Fatalf("%v", err)
		}
		return
	}

	if err = run(config, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}

func parseFlags() cliFlags {
	var f cliFlags
	flaggy.SetName("go-universe")
	flaggy.SetDescription("Conway's Game of Life on a toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	flaggy.String(&f.configFile, "c", "config", "JSON configuration file (defaults to "+defaultConfigFile+" when present)")
	flaggy.UInt32(&f.width, "x", "width", "Width of the universe")
	flaggy.UInt32(&f.height, "y", "height", "Height of the universe")
	flaggy.Int64(&f.seed, "s", "seed", "Random seed, 0 seeds from the clock")
	flaggy.String(&f.mode, "m", "mode", "Seeding strategy [symmetric|window]")
	flaggy.Int(&f.generations, "g", "generations", "Stop after this many generations")
	flaggy.Int(&f.workers, "w", "workers", "Goroutines used per generation")
	flaggy.Duration(&f.interval, "i", "interval", "Delay between generations, for example 150ms")
	flaggy.Bool(&f.interactive, "n", "interactive", "Start the interactive console")
	flaggy.String(&f.stateFile, "", "state", "Import a packed bitmap instead of seeding")
	flaggy.String(&f.dumpFile, "", "dump", "Write the final generation as a packed bitmap")

	flaggy.Parse()
	return f
}

// loadConfig reads an explicit config file, or config.json when it exists
func loadConfig(filename string) (utils.Config, error) {
	if filename != "" {
		return utils.LoadConfig(filename)
	}
	config, err := utils.LoadConfig(defaultConfigFile)
	if err != nil {
		fmt.Println("Using default configuration (config.json not found)")
		return utils.DefaultConfig(), nil
	}
	return config, nil
}

func applyFlags(config *utils.Config, f cliFlags) {
	if f.width != 0 {
		config.Universe.Width = f.width
	}
	if f.height != 0 {
		config.Universe.Height = f.height
	}
	if f.seed != 0 {
		config.Universe.Seed = f.seed
	}
	if f.mode != "" {
		config.Universe.SeedStrategy = f.mode
	}
	if f.generations != 0 {
		config.Run.MaxGenerations = f.generations
	}
	if f.workers != 0 {
		config.Universe.Workers = f.workers
	}
	if f.interval != 0 {
		config.Run.FrameRate = f.interval
	}
	if f.interactive {
		config.Run.Interactive = true
	}
	if f.stateFile != "" {
		config.Run.StateFile = f.stateFile
	}
	if f.dumpFile != "" {
		config.Run.DumpFile = f.dumpFile
	}
}

// run drives the headless game loop until the generation limit or a signal
func run(config utils.Config, logger *log.Logger) error {
	u, renderer, history, stats, err := initializeGame(config, logger)
	if err != nil {
		return err
	}
	displayGameInfo(config, u)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var (
		generation    = 0
		stagnantCount = 0
		lastFrameTime = time.Now()
	)

loop:
	for {
		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			break loop
		default:
		}

		frameStart := time.Now()
		if err = renderer.Clear(); err != nil {
			logger.Printf("%v", err)
		}

		livingCells, density, status, isStagnant := updateGameState(u, history, lastFrameTime, stats, generation)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		displayGameStatus(generation, livingCells, density, status, u, stats)
		if err = renderer.Display(u); err != nil {
			return err
		}

		if config.Run.MaxGenerations > 0 && generation >= config.Run.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.Run.MaxGenerations)
			break
		}

		if shouldRestart, reason := checkRestartConditions(livingCells, stagnantCount, config); shouldRestart && config.Run.AutoRestart {
			fmt.Printf("🔄 Restarting due to %s...\n", reason)
			restartGame(u, history, config)
			stats.Restarts++
			stagnantCount = 0
		}

		u.Tick()
		generation++

		time.Sleep(config.Run.FrameRate)
	}

	fmt.Println("Final stats:", stats.Summary())
	if config.Run.DumpFile != "" {
		return dumpState(u, config.Run.DumpFile)
	}
	return nil
}
