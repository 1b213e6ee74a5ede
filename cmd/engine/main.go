// Command engine implements the stdio protocol an external match runner
// speaks to one seat: get_move/notify_move/time/reset lines in, a single
// move_response line out per get_move, exit 0 on clean EOF shutdown.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nikohass/azulcore/game"
	"github.com/nikohass/azulcore/mcts"
	"github.com/nikohass/azulcore/move"
	"github.com/nikohass/azulcore/player"
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed")
	thinkMs := flag.Int64("think-ms", 1000, "milliseconds allotted per get_move")
	verbose := flag.Bool("verbose", false, "emit debug-level logging to stderr")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	tc := mcts.TimeControl{Kind: mcts.ConstantTimePerMove, MillisecondsPerMove: *thinkMs}
	p := player.NewMCTSPlayer(*seed, tc)

	if err := run(os.Stdin, os.Stdout, p); err != nil {
		log.Error().Err(err).Msg("engine exited with error")
		os.Exit(1)
	}
}

// run drives the protocol loop: it owns no state of its own beyond the
// player, since every line carries a full FEN-like state snapshot.
func run(stdin *os.File, stdout *os.File, p player.Player) error {
	printer := message.NewPrinter(language.English)
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		cmd := fields[0]

		switch cmd {
		case "get_move":
			if len(fields) != 2 {
				log.Error().Str("line", line).Msg("get_move requires a fen argument")
				continue
			}
			if err := handleGetMove(stdout, p, fields[1], printer); err != nil {
				return err
			}

		case "notify_move":
			if err := handleNotifyMove(p, fields); err != nil {
				log.Error().Err(err).Str("line", line).Msg("notify_move failed")
			}

		case "time":
			if len(fields) != 2 {
				log.Error().Str("line", line).Msg("time requires a milliseconds argument")
				continue
			}
			ms, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
			if err != nil {
				log.Error().Err(err).Msg("malformed time argument")
				continue
			}
			p.NotifyRemainingTime(ms)

		case "reset":
			p.Reset()

		default:
			log.Error().Str("line", line).Msg("unrecognized command")
		}
	}
	return scanner.Err()
}

// statsSource is implemented by player.MCTSPlayer; handleGetMove checks
// for it opportunistically so a random/heuristic seat still works without
// a Stats method.
type statsSource interface {
	Stats() mcts.RootStatistics
}

func handleGetMove(stdout *os.File, p player.Player, fen string, printer *message.Printer) error {
	state, err := game.Deserialize(fen)
	if err != nil {
		return fmt.Errorf("get_move: deserializing fen: %w", err)
	}

	m, err := p.GetMove(context.Background(), state)
	if err != nil {
		return fmt.Errorf("get_move: %w", err)
	}

	if src, ok := p.(statsSource); ok {
		stats := src.Stats()
		log.Debug().Msg(printer.Sprintf("searched %d nodes (%.0f nodes/sec)", int64(stats.Visits), stats.IterationsPerSecond))
	}

	_, err = fmt.Fprintf(stdout, "move_response %s\n", m.String())
	return err
}

func handleNotifyMove(p player.Player, fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("notify_move requires <fen> <move> arguments")
	}
	// The FEN itself contains spaces; the move token is the last field.
	sep := strings.LastIndex(fields[1], " ")
	if sep < 0 {
		return fmt.Errorf("notify_move requires <fen> <move> arguments")
	}
	fen, token := fields[1][:sep], fields[1][sep+1:]

	state, err := game.Deserialize(fen)
	if err != nil {
		return fmt.Errorf("deserializing fen: %w", err)
	}
	m, err := move.Parse(token)
	if err != nil {
		return fmt.Errorf("parsing move: %w", err)
	}

	p.NotifyMove(state, m)
	return nil
}
