package book

import (
	"bufio"
	"io"
	"strings"

	"ginkgo/game"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ReadGames parses game records, one per line, as whitespace separated GTP vertices. Blank
// lines and lines starting with '#' are skipped.
func ReadGames(r io.Reader, width int) ([][]game.Point, error) {
	coords := game.ForWidth(width)
	var games [][]game.Point
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var parseErr error
		moves := lo.Map(strings.Fields(text), func(label string, _ int) game.Point {
			p, err := coords.Parse(label)
			if err != nil && parseErr == nil {
				parseErr = err
			}
			return p
		})
		if parseErr != nil {
			return nil, errors.Wrapf(parseErr, "line %d", line)
		}
		games = append(games, moves)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading game records")
	}
	return games, nil
}

// Load builds a Fuseki book from the game records in r.
func Load(r io.Reader, width, maxMoves, countThreshold int) (*Fuseki, error) {
	games, err := ReadGames(r, width)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(width, maxMoves, countThreshold)
	if err := b.AddGames(games); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
