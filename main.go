package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fourline/engine"
	"fourline/game"
	"fourline/metrics"
	"fourline/server"
)

func main() {
	mode := flag.String("mode", "play", "play, bench or serve")
	states := flag.Int("states", 1000000, "States to generate per engine move")
	configPath := flag.String("config", "", "Path to a JSON server config")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	switch *mode {
	case "play":
		runGame(*states)
	case "bench":
		runBenchmark(*states)
	case "serve":
		runServer(*configPath)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

// runGame plays the human (player one) against the engine on the terminal.
func runGame(states int) {
	manager := engine.NewGame()
	scanner := bufio.NewScanner(os.Stdin)

	for manager.IsGameOver() == game.InProgress {
		printPosition(manager)

		fmt.Print("your column (0-6): ")
		if !scanner.Scan() {
			return
		}
		col, err := strconv.Atoi(scanner.Text())
		if err != nil {
			fmt.Println("not a number")
			continue
		}
		if err := manager.MakeMove(col); err != nil {
			fmt.Printf("bad move: %v\n", err)
			continue
		}
		if manager.IsGameOver() != game.InProgress {
			break
		}

		start := time.Now()
		manager.TryGenerateStates(states)
		col = bestMove(manager)
		if err := manager.MakeMove(col); err != nil {
			log.Fatal().Err(err).Int("column", col).Msg("engine move failed")
		}
		log.Info().
			Int("column", col).
			Dur("thinking", time.Since(start)).
			Msg("engine moved")
	}

	printPosition(manager)
	fmt.Println(manager.IsGameOver())
}

// bestMove picks the column with the highest score for the side to move.
func bestMove(manager *engine.GameManager) int {
	best, bestScore := -1, int64(0)
	for col, score := range manager.MoveScores() {
		if best == -1 || score > bestScore {
			best, bestScore = col, score
		}
	}
	return best
}

func printPosition(manager *engine.GameManager) {
	position := manager.GetPosition()
	symbols := [3]byte{'.', 'x', 'o'}
	for row := game.Rows - 1; row >= 0; row-- {
		line := make([]byte, game.Columns)
		for col := 0; col < game.Columns; col++ {
			line[col] = symbols[position[row][col]]
		}
		fmt.Println(string(line))
	}
	fmt.Println("0123456")
}

// runBenchmark grows a tree from the empty board and reports throughput.
func runBenchmark(states int) {
	manager := engine.NewGame()
	collector := metrics.NewCollector()
	collector.Start()

	remaining := states
	for remaining > 0 {
		slice := min(remaining, 25000)
		generated := manager.TryGenerateStates(slice)
		collector.AddSlice(generated)
		if generated == 0 {
			collector.SetExhausted(true)
			break
		}
		remaining -= generated
	}

	metric := collector.Complete()
	size := manager.Size()
	log.Info().
		Int("states", metric.States).
		Int("slices", metric.Slices).
		Dur("duration", metric.Duration).
		Bool("exhausted", metric.Exhausted).
		Int("depth", size.Depth).
		Int("nodes", size.Nodes).
		Int("memory", size.Memory).
		Msg("benchmark finished")

	writer, err := metrics.NewWriter("bench")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}
	if err := writer.WriteGrowthMetrics([]metrics.GrowthMetric{metric}); err != nil {
		log.Fatal().Err(err).Msg("failed to write metrics")
	}
}

func runServer(configPath string) {
	config := server.DefaultConfig()
	if configPath != "" {
		var err error
		config, err = server.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	if err := server.New(config).ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
