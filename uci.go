package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Emre-Akgul/Chess-AI/board"
	"github.com/Emre-Akgul/Chess-AI/engine"
	"github.com/Emre-Akgul/Chess-AI/logx"
	"github.com/Emre-Akgul/Chess-AI/player"
)

// mateCentipawns stands in for an infinite score on the cp scale.
const mateCentipawns = 100000

func main() {
	depth := flag.Int("depth", player.DefaultDepth, "search depth when go has none")
	iterative := flag.Bool("iterative", false, "use iterative deepening")
	levelFlag := flag.String("log-level", "warn", "log level for stderr")
	flag.Parse()

	level, err := logx.ParseLevel(*levelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logx.NewLogger(os.Stderr, level)

	mode := engine.FixedDepth
	if *iterative {
		mode = engine.IterativeDeepening
	}
	u := newUCI(os.Stdout, *depth, engine.NewSelector(engine.WithMode(mode), engine.WithLogger(log)))
	if err := u.loop(os.Stdin); err != nil {
		log.Error().Err(err).Msg("reading commands")
		os.Exit(1)
	}
}

type uci struct {
	out      io.Writer
	pos      *board.Position
	depth    int
	selector *engine.Selector
}

func newUCI(out io.Writer, depth int, selector *engine.Selector) *uci {
	return &uci{out: out, pos: board.New(), depth: depth, selector: selector}
}

func (u *uci) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *uci) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name Chess-AI")
			u.println("id author Emre Akgul")
			u.println("option name Depth type spin default", u.depth, "min 1 max 8")
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.pos = board.New()
		case "quit":
			return nil
		case "stop":
			// searches run to completion before the next command is read
		case "eval":
			u.println("info string eval", engine.Evaluate(u.pos))
		case "moveordering":
			u.moveOrdering()
		case "position":
			u.position(tokens[1:])
		case "go":
			u.goCommand(tokens[1:])
		case "setoption":
			u.setOption(tokens[1:])
		default:
			u.println("info string Unknown command:", line)
		}
	}
	return scanner.Err()
}

func (u *uci) moveOrdering() {
	moves := engine.OrderMoves(u.pos, u.pos.LegalMoves())
	for i, m := range moves {
		u.println(fmt.Sprintf("info string %d %s %.3f", i+1, m, engine.Priority(u.pos, m)))
	}
}

// position handles "startpos [moves ...]" and "fen <fen> [moves ...]".
func (u *uci) position(args []string) {
	if len(args) == 0 {
		u.println("info string Malformed position command")
		return
	}
	var (
		pos  *board.Position
		rest []string
	)
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos, rest = board.New(), args[1:]
	case "fen":
		end := len(args)
		for i, tok := range args {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		pos, err = board.FromFEN(strings.Join(args[1:end], " "))
		if err != nil {
			u.println("info string Invalid fen position:", err)
			return
		}
		rest = args[end:]
	default:
		u.println("info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, mv := range rest[1:] {
			if _, err := pos.PushUCI(mv); err != nil {
				u.println("info string Move", mv, "not found for position", pos.FEN())
				return
			}
		}
	}
	u.pos = pos
}

func (u *uci) goCommand(args []string) {
	depth := u.depth
	for i := 0; i < len(args); i++ {
		switch tok := strings.ToLower(args[i]); tok {
		case "depth":
			if i+1 >= len(args) {
				u.println("info string Malformed go command option depth")
				return
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil || d <= 0 {
				u.println("info string Malformed go command option; could not convert depth")
				return
			}
			depth = d
		case "wtime", "btime", "winc", "binc", "movetime", "movestogo":
			// fixed-depth engine; clock options are accepted and ignored
			i++
		case "infinite":
		default:
			u.println("info string Unknown go subcommand", tok)
		}
	}

	whiteToMove := u.pos.SideToMove() == board.White
	res, err := u.selector.ChooseMove(u.pos.Clone(), depth)
	switch {
	case errors.Is(err, engine.ErrNoLegalMoves):
		u.println("bestmove 0000")
		return
	case err != nil:
		u.println("info string search failed:", err)
		u.println("bestmove 0000")
		return
	}
	u.println(fmt.Sprintf("info depth %d score cp %d nodes %d", res.Depth, centipawns(res.Score, whiteToMove), res.Nodes))
	u.println("bestmove", res.Move)
}

// setOption understands "name Depth value N".
func (u *uci) setOption(args []string) {
	if len(args) != 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		u.println("info string Malformed setoption command")
		return
	}
	if strings.ToLower(args[1]) != "depth" {
		u.println("info string Unknown option", args[1])
		return
	}
	d, err := strconv.Atoi(args[3])
	if err != nil || d <= 0 {
		u.println("info string Invalid depth", args[3])
		return
	}
	u.depth = d
}

// centipawns converts a White-relative score to the side to move's view.
func centipawns(s engine.Score, whiteToMove bool) int {
	if !whiteToMove {
		s = -s
	}
	if s.IsMate() {
		if s > 0 {
			return mateCentipawns
		}
		return -mateCentipawns
	}
	return int(math.Round(float64(s) * 100))
}
