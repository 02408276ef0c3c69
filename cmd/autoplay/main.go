// autoplay runs complete games with a chosen solver tier and reports
// the results, optionally rendering each turn. Useful for eyeballing
// solver behavior and for quick win-rate comparisons between tiers.
package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/SGrimsley02/sweeper/internal/event"
	"github.com/SGrimsley02/sweeper/internal/game"
	"github.com/SGrimsley02/sweeper/internal/solver"
)

var log = logrus.New()

var (
	size      = flag.Int("size", 9, "grid size")
	mineCount = flag.Int("mines", 10, "mine count")
	tierName  = flag.String("tier", "hard", "solver tier: easy, medium or hard")
	games     = flag.Int("games", 1, "number of games to play")
	hints     = flag.Int("hints", 0, "hints to spend per game before solving")
	seed      = flag.Uint64("seed", 0, "rng seed (0 picks a random one)")
	verbose   = flag.Bool("v", false, "render the board after every turn")
)

func main() {
	flag.Parse()

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	tier, err := solver.ParseTier(*tierName)
	if err != nil {
		log.Fatal(err)
	}

	s := *seed
	if s == 0 {
		s = new(maphash.Hash).Sum64()
	}
	rnd := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))

	var won, lost int
	for i := range *games {
		sess, err := game.NewSession(*size, *mineCount, rnd,
			game.WithEmitter(event.Log{Logger: log}))
		if err != nil {
			log.Fatal(err)
		}

		for range *hints {
			if sess.Hint() != game.HintGood {
				break
			}
		}

		turns := 0
		for !sess.Terminal() {
			sess.Step(tier)
			turns++
			if *verbose {
				fmt.Println(sess.Snapshot().Grid.Render(*size))
			}
		}

		switch sess.Outcome() {
		case game.OutcomeWon:
			won++
		case game.OutcomeLost:
			lost++
		}
		log.WithFields(logrus.Fields{
			"game":    i + 1,
			"turns":   turns,
			"outcome": sess.Outcome(),
		}).Info("game finished")
	}

	fmt.Printf("%s tier: %d games, %d won, %d lost (%.1f%% win rate)\n",
		tier, *games, won, lost, float64(won)*100/float64(*games))
}
