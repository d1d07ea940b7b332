package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AtulFalle/pictionary/internal/apperror"
	"github.com/AtulFalle/pictionary/internal/entity"
	"github.com/AtulFalle/pictionary/internal/rotation"
)

const recordAwardTimeout = 5 * time.Second

// SubmitGuess adjudicates a guess against the active round's word. The first
// correct guess awards points and ends the round; the transition out of
// playing is what makes any later correct guess fail the NoActiveRound
// precondition instead of scoring twice.
func (that *GameManager) SubmitGuess(_ context.Context, connID, guess string) error {
	log := that.logger.With("method", "SubmitGuess")

	room := that.registry.FindByConn(connID)
	if room == nil {
		return apperror.ErrNotInRoom
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByConn(connID)
	if player == nil {
		return apperror.ErrNotInRoom
	}

	if !room.IsPlaying() {
		return apperror.ErrNoActiveRound
	}

	if player.IsDrawer {
		return apperror.ErrDrawerCannotGuess
	}

	word := room.Round.Word
	if !Matches(guess, word) {
		that.dispatcher.SendTo(connID, EventGuessResult, GuessResultPayload{
			IsCorrect:  false,
			Guess:      guess,
			PlayerName: player.Name,
			Message:    fmt.Sprintf("%q is not correct. Keep guessing!", guess),
		})

		return nil
	}

	player.Score += that.conf.GuessPoints
	that.recordAward(room, player, word)

	that.dispatcher.Broadcast(room.Code, EventScoreUpdate, ScoreUpdatePayload{
		PlayerID:     player.ID,
		PlayerName:   player.Name,
		NewScore:     player.Score,
		PointsEarned: that.conf.GuessPoints,
		Reason:       "Correct guess",
		RoomCode:     room.Code,
	})

	gameOver := room.FinishRound()

	var nextDrawer *entity.Player
	if !gameOver {
		if candidate, err := rotation.NextDrawer(room); err == nil {
			nextDrawer = copyPlayer(candidate)
		}
	}

	that.dispatcher.Broadcast(room.Code, EventRoundEnd, RoundEndPayload{
		CorrectWord: word,
		Winner:      copyPlayer(player),
		RoundNumber: room.CurrentRound,
		Scores:      room.Scores(),
		IsGameOver:  gameOver,
		TotalRounds: room.TotalRounds,
		NextDrawer:  nextDrawer,
	})

	if gameOver {
		that.dispatcher.Broadcast(room.Code, EventNextRound, GameOverPayload{
			RoundNumber: room.CurrentRound,
			IsGameOver:  true,
			FinalScores: room.Scores(),
			GameWinner:  copyPlayer(room.TopPlayer()),
		})
	} else {
		that.scheduleNextRound(room.Code, room.CurrentRound)
	}

	that.dispatcher.SendTo(connID, EventGuessResult, GuessResultPayload{
		IsCorrect:  true,
		Guess:      guess,
		PlayerName: player.Name,
		Message:    fmt.Sprintf("Correct! You guessed %q and earned %d points!", guess, that.conf.GuessPoints),
	})

	log.Info("correct guess", "room", room.Code, "player", player.Name, "round", room.CurrentRound, "gameOver", gameOver)

	return nil
}

// Matches reports whether a guess hits the secret word: case-insensitive,
// outer whitespace ignored, otherwise exact.
func Matches(guess, word string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(word))
}

// recordAward appends the award to the score history off the hot path. The
// history is best effort: a storage failure is logged and never fails the
// guess, and the write happens outside the room lock.
func (that *GameManager) recordAward(room *entity.Room, player *entity.Player, word string) {
	if that.scores == nil {
		return
	}

	award := &entity.ScoreAward{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		RoomCode:   room.Code,
		Round:      room.CurrentRound,
		Word:       word,
		Points:     that.conf.GuessPoints,
		Total:      player.Score,
		AwardedAt:  time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordAwardTimeout)
		defer cancel()

		if err := that.scores.RecordAward(ctx, award); err != nil {
			that.logger.Error("failed to record score award", "player", award.PlayerID, "error", err)
		}
	}()
}
