package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer written from the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStart_NonTerminalPrintsOnce(t *testing.T) {
	var buf bytes.Buffer
	stop := Start(&buf, "Uploading index.html")
	stop()
	stop()
	assert.Equal(t, "Uploading index.html\n", buf.String())
}

func TestAnimate_DrawsAndClears(t *testing.T) {
	var buf syncBuffer
	stop := animate(&buf, "Uploading", time.Millisecond)
	assert.Eventually(t, func() bool {
		return strings.Count(buf.String(), "Uploading") >= 2
	}, time.Second, time.Millisecond)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, frames[0]+" Uploading")
	assert.True(t, strings.HasSuffix(out, "\r"+strings.Repeat(" ", len("Uploading")+2)+"\r"))
}
