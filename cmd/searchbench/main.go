package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/Emre-Akgul/Chess-AI/engine"
	"github.com/Emre-Akgul/Chess-AI/logx"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	iterative := flag.Bool("iterative", false, "search depths 1..depth instead of depth only")
	seedFlag := flag.Uint64("seed", 1, "tie-break seed")
	levelFlag := flag.String("log-level", "info", "log level")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	level, err := logx.ParseLevel(*levelFlag)
	if err != nil {
		log.Fatal(err)
	}
	logger := logx.NewLogger(os.Stderr, level)

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := board.Startpos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	mode := engine.FixedDepth
	if *iterative {
		mode = engine.IterativeDeepening
	}
	selector := engine.NewSelector(engine.WithMode(mode), engine.WithSeed(*seedFlag), engine.WithLogger(logger))

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d mode=%s\n", fen, *depthFlag, *repeatFlag, mode)

	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < *repeatFlag; i++ {
		// fresh position for each run
		pos, err := board.FromFEN(fen)
		if err != nil {
			log.Fatalf("bad fen: %v", err)
		}

		iterStart := time.Now()
		res, err := selector.ChooseMove(pos, *depthFlag)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		iterElapsed := time.Since(iterStart)
		totalNodes += res.Nodes

		fmt.Printf("iteration %d: bestmove %v score %v ties %d nodes %d time=%v\n",
			i+1, res.Move, res.Score, len(res.Ties), res.Nodes, iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
