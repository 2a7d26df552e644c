package realtime

import (
	"context"
	"fmt"

	"github.com/pickupsports/game-chat-api/chat"
)

// MembershipOracle answers whether a user may act within a game.
// databases.GameDatabase satisfies it.
type MembershipOracle interface {
	IsParticipant(ctx context.Context, gameID int64, username string) (bool, error)
}

// DestinationAuthorizer checks, per frame, that the attached identity
// may act on the addressed game room. It must run after the
// authenticator: a nil identity on a game address is rejected.
type DestinationAuthorizer struct {
	Games MembershipOracle
}

// Authorize passes non-game destinations through untouched and
// requires game membership for the rest
func (d *DestinationAuthorizer) Authorize(ctx context.Context, identity *Identity, destination string) error {
	gameID, ok := ParseGameDestination(destination)
	if !ok {
		return nil
	}
	if identity == nil {
		return chat.Unauthenticated("not connected")
	}
	member, err := d.Games.IsParticipant(ctx, gameID, identity.Username)
	if err != nil {
		return err
	}
	if !member {
		return chat.Forbidden(fmt.Sprintf("not a participant of game %d", gameID))
	}
	return nil
}
