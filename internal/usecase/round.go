package usecase

import (
	"context"
	"time"

	"github.com/AtulFalle/pictionary/internal/apperror"
	"github.com/AtulFalle/pictionary/internal/entity"
	"github.com/AtulFalle/pictionary/internal/rotation"
)

// StartRound begins the next round on the host's explicit request.
func (that *GameManager) StartRound(_ context.Context, connID string) error {
	room := that.registry.FindByConn(connID)
	if room == nil {
		return apperror.ErrNotInRoom
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByConn(connID)
	if player == nil {
		// removed between lookup and lock
		return apperror.ErrNotInRoom
	}

	if !player.IsHost {
		return apperror.ErrNotHost
	}

	if len(room.Players) < 2 {
		return apperror.ErrInsufficientPlayers
	}

	if !room.IsWaiting() {
		return apperror.ErrRoundAlreadyInProgress
	}

	return that.beginRound(room)
}

// beginRound picks the drawer and word, moves the room into playing, and
// tells each player about the round. Only the drawer's copy of round_info
// carries the word. Callers must hold the room lock.
func (that *GameManager) beginRound(room *entity.Room) error {
	log := that.logger.With("method", "beginRound", "room", room.Code)

	drawer, err := rotation.NextDrawer(room)
	if err != nil {
		return err
	}

	round := &entity.Round{
		Number:    room.CurrentRound + 1,
		Word:      that.words.NextWord(),
		DrawerID:  drawer.ID,
		TimeLimit: that.conf.RoundTime,
	}
	room.BeginRound(round)

	info := RoundInfo{
		RoundNumber: round.Number,
		Drawer:      copyPlayer(drawer),
		TimeLimit:   round.TimeLimit,
	}

	drawerInfo := info
	drawerInfo.Word = round.Word
	that.dispatcher.SendTo(drawer.ConnID, EventRoundInfo, RoundInfoPayload{RoundInfo: drawerInfo, IsDrawer: true})

	for _, player := range room.Players {
		if player.ID == drawer.ID {
			continue
		}
		that.dispatcher.SendTo(player.ConnID, EventRoundInfo, RoundInfoPayload{RoundInfo: info, IsDrawer: false})
	}

	that.dispatcher.Broadcast(room.Code, EventRoomUpdated, RoomPayload{Room: room.Snapshot()})

	log.Info("round started", "round", round.Number, "drawer", drawer.Name)

	return nil
}

// abortInterruptedRound ends the active round without a winner when a
// departure made it unplayable: the drawer is gone or fewer than two players
// remain. Keeps the exactly-one-drawer rule for playing rooms. Callers must
// hold the room lock.
func (that *GameManager) abortInterruptedRound(room *entity.Room, departed *entity.Player) {
	if !room.IsPlaying() || room.IsEmpty() {
		return
	}

	if !departed.IsDrawer && len(room.Players) >= 2 {
		return
	}

	log := that.logger.With("method", "abortInterruptedRound", "room", room.Code)

	word := room.Round.Word
	gameOver := room.FinishRound()

	var nextDrawer *entity.Player
	if !gameOver && len(room.Players) >= 2 {
		if candidate, err := rotation.NextDrawer(room); err == nil {
			nextDrawer = copyPlayer(candidate)
		}
	}

	that.dispatcher.Broadcast(room.Code, EventRoundEnd, RoundEndPayload{
		CorrectWord: word,
		RoundNumber: room.CurrentRound,
		Scores:      room.Scores(),
		IsGameOver:  gameOver,
		TotalRounds: room.TotalRounds,
		NextDrawer:  nextDrawer,
	})

	switch {
	case gameOver:
		that.dispatcher.Broadcast(room.Code, EventNextRound, GameOverPayload{
			RoundNumber: room.CurrentRound,
			IsGameOver:  true,
			FinalScores: room.Scores(),
			GameWinner:  copyPlayer(room.TopPlayer()),
		})
	case len(room.Players) >= 2:
		that.scheduleNextRound(room.Code, room.CurrentRound)
	}

	log.Info("round aborted", "round", room.CurrentRound, "departed", departed.Name, "gameOver", gameOver)
}

// scheduleNextRound arms the auto-advance timer. The callback re-resolves the
// room by code and re-validates its state, since the room may have been
// deleted or moved on while the timer was pending; the delay itself is spent
// outside any lock.
func (that *GameManager) scheduleNextRound(roomCode string, afterRound int) {
	time.AfterFunc(that.nextRoundDelay(), func() {
		that.autoStartRound(roomCode, afterRound)
	})
}

func (that *GameManager) autoStartRound(roomCode string, afterRound int) {
	log := that.logger.With("method", "autoStartRound", "room", roomCode)

	// The timer goroutine has no dispatch loop above it to contain a fault.
	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic in auto-start", "panic", r)
		}
	}()

	room, err := that.registry.FindByCode(roomCode)
	if err != nil {
		// room dissolved during the delay
		return
	}

	room.Lock()
	defer room.Unlock()

	if !room.IsWaiting() || room.CurrentRound != afterRound || len(room.Players) < 2 {
		return
	}

	if err := that.beginRound(room); err != nil {
		log.Error("failed to start next round", "error", err)
	}
}
