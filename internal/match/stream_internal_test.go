package match

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamPlayer_CloseStopsReader(t *testing.T) {
	r, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	// The second line arrives but is never asked for.
	go fmt.Fprint(w, "first\nlate\n")

	p := NewStreamPlayer(r, io.Discard, nil)

	resp, err := p.SendCommand(context.Background(), "shot")
	require.NoError(t, err)
	assert.Equal(t, "first", resp)

	require.NoError(t, p.Close())

	select {
	case <-p.stopped:
	case <-time.After(time.Second):
		t.Fatal("reader is still blocked on an unread line")
	}

	_, err = p.SendCommand(context.Background(), "shot")
	assert.ErrorIs(t, err, ErrPlayerGone)
	assert.NoError(t, p.Close())
}
