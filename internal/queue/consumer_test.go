package queue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLeadAppendsLine(t *testing.T) {
	dir := t.TempDir()
	body := []byte(`{"ref":"6f1c","source":"booking_page_whatsapp","note":"room=Podcast Room;dates=2026-11-02","captured_at":"2026-10-16T09:00:00Z"}`)

	require.NoError(t, HandleLead(dir, body))
	require.NoError(t, HandleLead(dir, body))

	bs, err := os.ReadFile(filepath.Join(dir, "leads.log"))
	require.NoError(t, err)
	assert.Contains(t, string(bs), "ref=6f1c | source=booking_page_whatsapp")
	assert.Contains(t, string(bs), `note="room=Podcast Room;dates=2026-11-02"`)
	assert.Equal(t, 2, countLines(bs))
}

func TestHandleLeadRejectsBadPayload(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, HandleLead(dir, []byte(`{`)))
	assert.Error(t, HandleLead(dir, []byte(`{"source":"x"}`)))
	_, err := os.Stat(filepath.Join(dir, "leads.log"))
	assert.True(t, os.IsNotExist(err))
}

func countLines(bs []byte) int {
	n := 0
	for _, b := range bs {
		if b == '\n' {
			n++
		}
	}
	return n
}
