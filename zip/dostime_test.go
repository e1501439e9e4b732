package zip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToDOS_RoundTrip(t *testing.T) {
	in := time.Date(2024, time.June, 15, 13, 37, 42, 0, time.UTC)
	date, dtime := timeToDOS(in)

	got := dosToTime(date, dtime)
	require.Equal(t, in, got)
}

func TestTimeToDOS_OddSecondTruncated(t *testing.T) {
	in := time.Date(2024, time.June, 15, 13, 37, 43, 0, time.UTC)
	date, dtime := timeToDOS(in)

	got := dosToTime(date, dtime)
	assert.Equal(t, 42, got.Second())
}

func TestTimeToDOS_Saturation(t *testing.T) {
	date, dtime := timeToDOS(time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC))
	assert.Equal(t, dosEpoch, dosToTime(date, dtime))

	date, dtime = timeToDOS(time.Date(2222, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, dosMax, dosToTime(date, dtime))
}
