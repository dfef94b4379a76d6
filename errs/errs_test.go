package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusUsesMappedCodeOrDefaultsTo400(t *testing.T) {
	require.Equal(t, http.StatusNotFound, New(NotFound).Status())
	require.Equal(t, http.StatusGone, New(RoomExpired).Status())
	require.Equal(t, http.StatusBadRequest, New(InvalidBidAmount).Status())
}

func TestIsMatchesKind(t *testing.T) {
	err := New(NotYourTurn)
	require.True(t, Is(err, NotYourTurn))
	require.False(t, Is(err, IllegalMove))
	require.False(t, Is(nil, NotYourTurn))
}

func TestErrorStringIsKind(t *testing.T) {
	require.Equal(t, "clock_not_expired", New(ClockNotExpired).Error())
}
