package rotation

import (
	"fmt"
	"math/rand"

	"github.com/AtulFalle/pictionary/internal/apperror"
	"github.com/AtulFalle/pictionary/internal/entity"
)

// Build returns a uniformly random permutation of the given player IDs,
// defining the order in which players take the drawer role.
func Build(playerIDs []string) []string {
	order := make([]string, len(playerIDs))
	copy(order, playerIDs)

	rand.Shuffle(len(order), func(i, j int) { //nolint: gosec // it's ok
		order[i], order[j] = order[j], order[i]
	})

	return order
}

// NextDrawer picks the drawer for the room's next round. A rotation whose
// length no longer matches the roster is rebuilt from the live roster first,
// which reshuffles and forgets whose turn it was. That matches the observed
// behavior of the game: a roster change resets the turn order.
func NextDrawer(room *entity.Room) (*entity.Player, error) {
	if len(room.DrawerRotation) != len(room.Players) {
		room.DrawerRotation = Build(playerIDs(room))
	}

	drawerID := room.DrawerRotation[room.CurrentRound%len(room.DrawerRotation)]

	player := room.PlayerByID(drawerID)
	if player == nil {
		// The rotation references a player that left after it was built but
		// before the roster size drifted. Rebuild once and index again.
		room.DrawerRotation = Build(playerIDs(room))
		player = room.PlayerByID(room.DrawerRotation[room.CurrentRound%len(room.DrawerRotation)])
	}

	if player == nil {
		return nil, fmt.Errorf("%w: rotation %v", apperror.ErrDrawerNotFound, room.DrawerRotation)
	}

	return player, nil
}

func playerIDs(room *entity.Room) []string {
	ids := make([]string, 0, len(room.Players))
	for _, player := range room.Players {
		ids = append(ids, player.ID)
	}
	return ids
}
