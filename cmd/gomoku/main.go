// gomoku - inspect and build shareable five-in-a-row game records
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/gomoku/pkg/engine"
	"github.com/yourusername/gomoku/pkg/token"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "show":
		cmdShow(args)
	case "record":
		cmdRecord(args)
	case "convert":
		cmdConvert(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gomoku - Five-in-a-row game record tool

Usage: gomoku <command> [options]

Commands:
  show      Render the board and move history of a game token
  record    Build a game token from a list of coordinates
  convert   Re-encode a token's record in a chosen raw format

Use "gomoku <command> -h" for command-specific help.

Token Format:
  Game tokens look like "gomoku://<base64url>/" and carry the complete
  move history. Coordinates are a column letter plus a 1-based row
  number, e.g. "h8" for the center of the board.`)
}

// parseCoord parses a coordinate like "h8" (column letter, 1-based row).
func parseCoord(s string) (engine.Point, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return engine.Point{}, fmt.Errorf("coordinate should look like 'h8'")
	}

	col := s[0]
	if col < 'a' || col > 'a'+engine.BoardSize-1 {
		return engine.Point{}, fmt.Errorf("column must be a-%c", 'a'+engine.BoardSize-1)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > engine.BoardSize {
		return engine.Point{}, fmt.Errorf("row must be 1-%d", engine.BoardSize)
	}

	return engine.Point{X: uint32(col - 'a'), Y: uint32(row - 1)}, nil
}

func formatCoord(p engine.Point) string {
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1)
}

func printGame(g *engine.Game) {
	var header strings.Builder
	header.WriteString("   ")
	for x := 0; x < engine.BoardSize; x++ {
		header.WriteByte(' ')
		header.WriteByte(byte('a' + x))
	}
	fmt.Println(header.String())

	for y := 0; y < engine.BoardSize; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%3d", y+1)
		for x := 0; x < engine.BoardSize; x++ {
			row.WriteByte(' ')
			switch g.StoneAt(engine.Point{X: uint32(x), Y: uint32(y)}) {
			case engine.Black:
				row.WriteByte('X')
			case engine.White:
				row.WriteByte('O')
			default:
				row.WriteByte('.')
			}
		}
		fmt.Println(row.String())
	}

	fmt.Printf("\nMoves: %d/%d, next: %s\n", g.MoveIndex(), g.TotalMoves(), g.InferTurn())
	for i, m := range g.PastMoves() {
		fmt.Printf("%3d. %-5s %s\n", i+1, m.Stone, formatCoord(m.Pos))
	}
	if win, ok := g.FirstWin(); ok {
		fmt.Printf("Win at move %d: %s-%s\n", win.Index, formatCoord(win.Row.Start), formatCoord(win.Row.End))
	}
}

func cmdShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	tokFlag := fs.String("token", "", "Game token (gomoku:// URI)")
	tokShort := fs.String("t", "", "Game token (short form)")
	at := fs.Int("at", -1, "Show the position after this many moves (default: all)")
	fs.Parse(args)

	tok := *tokFlag
	if tok == "" {
		tok = *tokShort
	}
	if tok == "" && fs.NArg() > 0 {
		tok = fs.Arg(0)
	}
	if tok == "" {
		fmt.Fprintln(os.Stderr, "Error: token required")
		fmt.Fprintln(os.Stderr, "Usage: gomoku show -token <gomoku://...>")
		os.Exit(1)
	}

	game, err := token.Decode(tok)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *at >= 0 {
		if *at > game.TotalMoves() {
			fmt.Fprintf(os.Stderr, "Error: game has only %d moves\n", game.TotalMoves())
			os.Exit(1)
		}
		game.Jump(*at)
	}

	printGame(game)
}

func cmdRecord(args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	movesFlag := fs.String("moves", "", "Comma-separated coordinates, e.g. 'h8,i9,h9'")
	fs.Parse(args)

	var coords []string
	if *movesFlag != "" {
		coords = strings.Split(*movesFlag, ",")
	} else {
		coords = fs.Args()
	}
	if len(coords) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one coordinate required")
		fmt.Fprintln(os.Stderr, "Usage: gomoku record -moves 'h8,i9,h9'")
		os.Exit(1)
	}

	game := engine.NewGame()
	for _, c := range coords {
		p, err := parseCoord(c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q: %v\n", c, err)
			os.Exit(1)
		}
		if !game.MakeMove(p, game.InferTurn()) {
			fmt.Fprintf(os.Stderr, "Error: %q: cell already occupied\n", c)
			os.Exit(1)
		}
	}

	fmt.Println(token.Encode(game))
}

func parseFormat(s string) (engine.Format, error) {
	switch s {
	case "runlength":
		return engine.FormatRunLength, nil
	case "pointstream":
		return engine.FormatPointStream, nil
	}
	return 0, fmt.Errorf("format must be 'runlength' or 'pointstream'")
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	tokFlag := fs.String("token", "", "Game token (gomoku:// URI)")
	formatFlag := fs.String("format", "pointstream", "Raw record format: runlength or pointstream")
	fs.Parse(args)

	if *tokFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: token required")
		fmt.Fprintln(os.Stderr, "Usage: gomoku convert -token <gomoku://...> -format pointstream")
		os.Exit(1)
	}
	format, err := parseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := token.Decode(*tokFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Tokens always carry the run-length format; this prints the bare
	// record payload for callers of the raw record API.
	fmt.Println(base64.URLEncoding.EncodeToString(game.Serialize(format)))
}
