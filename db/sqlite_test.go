package db

import (
	"context"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/require"
)

func TestScoreHistory(t *testing.T) {
	ctx := context.Background()

	mock := clock.NewMock()
	mock.Set(time.Date(2014, time.September, 7, 17, 0, 0, 0, time.UTC))

	d, err := New(ctx, ":memory:", mock)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.SaveScore(ctx, ScoreRecord{
		TeamKey: "nfl.l.431.t.1", PlayerID: "29288", PlayerName: "Tyler Boyd",
		Week: 1, Points: 10.0,
	}))

	mock.Add(10 * time.Second)
	require.NoError(t, d.SaveScore(ctx, ScoreRecord{
		TeamKey: "nfl.l.431.t.1", PlayerID: "29288", PlayerName: "Tyler Boyd",
		Week: 1, Points: 12.5,
	}))

	mock.Add(10 * time.Second)
	require.NoError(t, d.SaveScore(ctx, ScoreRecord{
		TeamKey: "nfl.l.431.t.2", PlayerID: "30150", PlayerName: "Zay Jones",
		Week: 1, Points: 3.0,
	}))

	scores, err := d.GetPlayerScores(ctx, "29288")
	require.NoError(t, err)
	require.Len(t, scores, 2)
	// Most recent observation first.
	require.Equal(t, 12.5, scores[0].Points)
	require.Equal(t, 10.0, scores[1].Points)
	require.True(t, scores[0].ObservedAt.After(scores[1].ObservedAt))

	week, err := d.GetWeekScores(ctx, 1)
	require.NoError(t, err)
	require.Len(t, week, 2)
	require.Equal(t, "29288", week[0].PlayerID)
	require.Equal(t, 12.5, week[0].Points)
	require.Equal(t, "30150", week[1].PlayerID)
	require.Equal(t, 3.0, week[1].Points)
}

func TestGetPlayerScores_unknownPlayer(t *testing.T) {
	ctx := context.Background()

	d, err := New(ctx, ":memory:", clock.New())
	require.NoError(t, err)
	defer d.Close()

	scores, err := d.GetPlayerScores(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, scores)
}
