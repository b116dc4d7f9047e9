package match_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/match"
)

func TestRegistry(t *testing.T) {
	r := match.NewRegistry(0)

	var wg sync.WaitGroup
	verdicts := make([]match.Verdict, 30)
	for i := range verdicts {
		verdicts[i] = match.Verdict{
			ID:     uuid.New(),
			Winner: match.Result(i % 3),
			Steps:  i,
		}

		wg.Add(1)
		go func(v match.Verdict) {
			defer wg.Done()
			r.Add(v)
		}(verdicts[i])
	}
	wg.Wait()

	assert.Equal(t, len(verdicts), r.Len())

	for _, v := range verdicts {
		got, ok := r.Get(v.ID)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}

	_, ok := r.Get(uuid.New())
	assert.False(t, ok)

	assert.Equal(t, map[match.Result]int{
		match.Tie:      10,
		match.AlphaWon: 10,
		match.BetaWon:  10,
	}, r.Tally())
}

func TestVerdict_JSON(t *testing.T) {
	v := match.Verdict{
		ID:      uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427"),
		Winner:  match.ResultFromWinner(game.Beta),
		Reason:  match.Timeout,
		Details: "alpha: alpha timeout",
		Steps:   7,
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		"winner": "beta",
		"reason": "TL",
		"details": "alpha: alpha timeout",
		"steps": 7
	}`, string(data))
}
