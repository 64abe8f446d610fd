package importer

import "github.com/JonMunkholm/pm3import/internal/pm3"

// AssembleLeagues rebuilds the five league tiers from the stored league of
// clubs 0..placed-1. Each tier keeps its first entries up to capacity and
// the remaining positions are emptied. It returns the number of clubs that
// did not fit their tier.
func AssembleLeagues(game *pm3.GameData, clubs *pm3.ClubData, placed int) int {
	var tiers [pm3.NumLeagues][]int
	for idx := 0; idx < placed; idx++ {
		league := clubs[idx].League()
		if league >= 0 && league < pm3.NumLeagues {
			tiers[league] = append(tiers[league], idx)
		}
	}

	game.ClearTiers()
	overflow := 0
	for l, members := range tiers {
		capacity := pm3.TierCapacity[l]
		if len(members) > capacity {
			overflow += len(members) - capacity
			members = members[:capacity]
		}
		for i, club := range members {
			game.SetTierClub(l, i, club)
		}
	}
	return overflow
}
