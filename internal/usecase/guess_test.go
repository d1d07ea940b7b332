package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtulFalle/pictionary/internal/apperror"
	"github.com/AtulFalle/pictionary/internal/entity"
	"github.com/AtulFalle/pictionary/internal/registry"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		guess string
		word  string
		want  bool
	}{
		{name: "exact match", guess: "cat", word: "cat", want: true},
		{name: "uppercase guess", guess: "CAT", word: "cat", want: true},
		{name: "mixed case", guess: "Cat", word: "cat", want: true},
		{name: "surrounding whitespace", guess: "  cat ", word: "cat", want: true},
		{name: "uppercase with whitespace", guess: "Cat ", word: "cat", want: true},
		{name: "plural is not the word", guess: "cats", word: "cat", want: false},
		{name: "different word", guess: "dog", word: "cat", want: false},
		{name: "empty guess", guess: "", word: "cat", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Matches(tc.guess, tc.word))
		})
	}
}

// startedRoom is a playing two-player room plus the conn IDs of the drawer
// and the guesser.
func startedRoom(t *testing.T, manager *GameManager, reg *registry.Registry) (room *entity.Room, drawerConn, guesserConn string) {
	t.Helper()

	room = createRoomWithPlayers(t, manager, reg, "conn-a", "conn-b")
	require.NoError(t, manager.StartRound(context.Background(), "conn-a"))

	room.Lock()
	defer room.Unlock()

	drawer, err := room.Drawer()
	require.NoError(t, err)

	drawerConn = drawer.ConnID
	guesserConn = "conn-a"
	if drawerConn == "conn-a" {
		guesserConn = "conn-b"
	}

	return room, drawerConn, guesserConn
}

func TestGameManager_SubmitGuess(t *testing.T) {
	t.Run("Wrong guess answers the guesser only and changes nothing", func(t *testing.T) {
		// Given: a playing room
		manager, dispatcher, reg, scores := newTestManager(t, testConf())
		room, _, guesserConn := startedRoom(t, manager, reg)
		dispatcher.reset()

		// When: the guesser misses
		require.NoError(t, manager.SubmitGuess(context.Background(), guesserConn, "dog"))

		// Then: only an addressed failure went out and the round kept running
		results := dispatcher.sentTo(guesserConn, EventGuessResult)
		require.Len(t, results, 1)
		payload := results[0].payload.(GuessResultPayload)
		assert.False(t, payload.IsCorrect)
		assert.Equal(t, "dog", payload.Guess)

		assert.Empty(t, dispatcher.named(EventScoreUpdate))
		assert.Empty(t, dispatcher.named(EventRoundEnd))
		assert.Equal(t, 0, scores.count())

		room.Lock()
		assert.True(t, room.IsPlaying())
		room.Unlock()
	})

	t.Run("Correct guess scores, ends the round, and keeps event order", func(t *testing.T) {
		// Given: a playing room with the word "cat" and auto-advance held off
		conf := testConf()
		conf.NextRoundDelay = 3600
		manager, dispatcher, reg, _ := newTestManager(t, conf)
		room, _, guesserConn := startedRoom(t, manager, reg)
		dispatcher.reset()

		// When: the guesser matches case-insensitively with padding
		require.NoError(t, manager.SubmitGuess(context.Background(), guesserConn, " CAT "))

		// Then: the guesser holds the award and the round is over
		room.Lock()
		guesser := room.PlayerByConn(guesserConn)
		assert.Equal(t, 10, guesser.Score)
		assert.True(t, room.IsWaiting())
		assert.Nil(t, room.Round)
		room.Unlock()

		// Then: score_update precedes round_end for every observer
		var scoreIdx, endIdx int
		for i, event := range dispatcher.all() {
			switch event.event {
			case EventScoreUpdate:
				scoreIdx = i
			case EventRoundEnd:
				endIdx = i
			}
		}
		assert.Less(t, scoreIdx, endIdx)

		scoreUpdates := dispatcher.named(EventScoreUpdate)
		require.Len(t, scoreUpdates, 1)
		scorePayload := scoreUpdates[0].payload.(ScoreUpdatePayload)
		assert.Equal(t, 10, scorePayload.NewScore)
		assert.Equal(t, 10, scorePayload.PointsEarned)
		assert.Equal(t, room.Code, scorePayload.RoomCode)

		roundEnds := dispatcher.named(EventRoundEnd)
		require.Len(t, roundEnds, 1)
		endPayload := roundEnds[0].payload.(RoundEndPayload)
		assert.Equal(t, "cat", endPayload.CorrectWord)
		assert.Equal(t, 1, endPayload.RoundNumber)
		assert.False(t, endPayload.IsGameOver)
		assert.Equal(t, 5, endPayload.TotalRounds)
		assert.NotNil(t, endPayload.NextDrawer)
		assert.Equal(t, 10, endPayload.Scores[endPayload.Winner.ID])

		results := dispatcher.sentTo(guesserConn, EventGuessResult)
		require.Len(t, results, 1)
		assert.True(t, results[0].payload.(GuessResultPayload).IsCorrect)
	})

	t.Run("The drawer may not guess", func(t *testing.T) {
		// Given: a playing room
		manager, _, reg, _ := newTestManager(t, testConf())
		_, drawerConn, _ := startedRoom(t, manager, reg)

		// When: the drawer submits the word
		err := manager.SubmitGuess(context.Background(), drawerConn, "cat")

		// Then: the guess is rejected
		assert.ErrorIs(t, err, apperror.ErrDrawerCannotGuess)
	})

	t.Run("Guessing outside a round returns NoActiveRound", func(t *testing.T) {
		// Given: a waiting room
		manager, _, reg, _ := newTestManager(t, testConf())
		createRoomWithPlayers(t, manager, reg, "conn-a", "conn-b")

		// When: a player guesses before any round started
		err := manager.SubmitGuess(context.Background(), "conn-b", "cat")

		// Then: there is nothing to guess in
		assert.ErrorIs(t, err, apperror.ErrNoActiveRound)
	})

	t.Run("Only the first correct guess scores", func(t *testing.T) {
		// Given: a single-round game with three players so two can race
		conf := testConf()
		conf.TotalRounds = 1
		manager, _, reg, scores := newTestManager(t, conf)
		room := createRoomWithPlayers(t, manager, reg, "conn-a", "conn-b", "conn-c")
		require.NoError(t, manager.StartRound(context.Background(), "conn-a"))

		room.Lock()
		drawer, err := room.Drawer()
		require.NoError(t, err)
		var guessers []string
		for _, conn := range []string{"conn-a", "conn-b", "conn-c"} {
			if conn != drawer.ConnID {
				guessers = append(guessers, conn)
			}
		}
		room.Unlock()

		// When: both non-drawers submit the word concurrently
		errs := make([]error, len(guessers))
		var wg sync.WaitGroup
		for i, conn := range guessers {
			wg.Add(1)
			go func(i int, conn string) {
				defer wg.Done()
				errs[i] = manager.SubmitGuess(context.Background(), conn, "cat")
			}(i, conn)
		}
		wg.Wait()

		// Then: exactly one scored; the loser hit NoActiveRound
		var okCount, noRoundCount int
		for _, err := range errs {
			switch {
			case err == nil:
				okCount++
			default:
				require.ErrorIs(t, err, apperror.ErrNoActiveRound)
				noRoundCount++
			}
		}
		assert.Equal(t, 1, okCount)
		assert.Equal(t, 1, noRoundCount)

		room.Lock()
		total := 0
		for _, player := range room.Players {
			total += player.Score
		}
		room.Unlock()
		assert.Equal(t, 10, total)

		assert.Eventually(t, func() bool { return scores.count() == 1 }, time.Second, 10*time.Millisecond)
	})

	t.Run("Final round ends the game and announces the winner", func(t *testing.T) {
		// Given: a single-round game
		conf := testConf()
		conf.TotalRounds = 1
		manager, dispatcher, reg, _ := newTestManager(t, conf)
		room, _, guesserConn := startedRoom(t, manager, reg)
		dispatcher.reset()

		// When: the round is won
		require.NoError(t, manager.SubmitGuess(context.Background(), guesserConn, "cat"))

		// Then: the room is terminal
		room.Lock()
		assert.True(t, room.IsFinished())
		winnerID := room.PlayerByConn(guesserConn).ID
		room.Unlock()

		// Then: round_end flags game over and next_round names the winner
		roundEnds := dispatcher.named(EventRoundEnd)
		require.Len(t, roundEnds, 1)
		assert.True(t, roundEnds[0].payload.(RoundEndPayload).IsGameOver)

		gameOvers := dispatcher.named(EventNextRound)
		require.Len(t, gameOvers, 1)
		overPayload := gameOvers[0].payload.(GameOverPayload)
		assert.True(t, overPayload.IsGameOver)
		assert.Equal(t, winnerID, overPayload.GameWinner.ID)
		assert.Equal(t, 10, overPayload.FinalScores[winnerID])

		// The frame keeps a null drawer key at game over.
		frame, err := json.Marshal(overPayload)
		require.NoError(t, err)
		assert.Contains(t, string(frame), `"drawer":null`)

		// Then: a guess into the finished room is rejected
		err = manager.SubmitGuess(context.Background(), guesserConn, "cat")
		assert.ErrorIs(t, err, apperror.ErrNoActiveRound)
	})
}
