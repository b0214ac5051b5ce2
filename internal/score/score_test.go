package score

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZeroElapsedYieldsZeroRates(t *testing.T) {
	var tr Tracker
	tr.RecordCorrect()
	tr.RecordIncorrect()
	require.Zero(t, tr.GrossWPM(0))
	require.Zero(t, tr.NetWPM(0))
}

func TestAccuracyWithoutInput(t *testing.T) {
	var tr Tracker
	require.Equal(t, 100.0, tr.Accuracy())
}

func TestCorrectBackspaceRoundTrip(t *testing.T) {
	var tr Tracker
	tr.RecordIncorrect()
	tr.RecordCorrect()
	before := tr

	tr.RecordCorrect()
	tr.RecordCorrectBackspace()
	require.Equal(t, before, tr)
}

func TestIncorrectBackspaceKeepsLifetimeTotal(t *testing.T) {
	var tr Tracker
	tr.RecordIncorrect()
	tr.RecordIncorrectBackspace()
	require.Equal(t, 0, tr.Incorrect())
	require.Equal(t, 1, tr.TotalIncorrect())
	require.Equal(t, 0.0, tr.Accuracy())
}

func TestRates(t *testing.T) {
	var tr Tracker
	for i := 0; i < 50; i++ {
		tr.RecordCorrect()
	}
	for i := 0; i < 10; i++ {
		tr.RecordIncorrect()
	}
	// 60 chars = 12 words in half a minute.
	require.InDelta(t, 24.0, tr.GrossWPM(30), 1e-9)
	// 10 errors per half minute = 20 per minute.
	require.InDelta(t, 4.0, tr.NetWPM(30), 1e-9)
	require.InDelta(t, 50.0/60.0*100, tr.Accuracy(), 1e-9)
}

func TestNetWPMIsNotClamped(t *testing.T) {
	var tr Tracker
	for i := 0; i < 10; i++ {
		tr.RecordIncorrect()
	}
	require.Less(t, tr.NetWPM(60), 0.0)
}

func TestAccuracyStaysInRange(t *testing.T) {
	var tr Tracker
	for i := 0; i < 200; i++ {
		switch i % 5 {
		case 0, 1:
			tr.RecordCorrect()
		case 2:
			tr.RecordIncorrect()
		case 3:
			tr.RecordIncorrectBackspace()
		default:
			tr.RecordCorrect()
			tr.RecordCorrectBackspace()
		}
		acc := tr.Accuracy()
		require.GreaterOrEqual(t, acc, 0.0)
		require.LessOrEqual(t, acc, 100.0)
	}
}
