package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeServerPayloads(t *testing.T) {
	raw := `{"balancing":true,"items":[
		{"downloading":false,"error":"","id":7,"progress":100,
		 "media":{"ID":"bequiet","Length":3710000000,"Title":"Please Be Quiet!","Type":"internal"}},
		{"downloading":true,"error":"","id":8,"progress":40,
		 "media":{"ID":"dQw4w9WgXcQ","Length":212000000000,"Title":"Song","Type":"youtube","Video":true}}
	]}`

	var q Queue
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	assert.True(t, q.Balancing)
	require.Equal(t, 2, q.Len())

	head, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, uint32(7), head.ID)
	assert.True(t, head.Ready())
	assert.Equal(t, "0:03", head.Media.DisplayLength())

	assert.False(t, q.Items[1].Ready())
	assert.Equal(t, "3:32", q.Items[1].Media.DisplayLength())
}

func TestPlayerState(t *testing.T) {
	var p PlayerState
	require.NoError(t, json.Unmarshal([]byte(`{"CurrentTime":65000,"TotalTime":3661000,"State":1,"Volume":80}`), &p))
	assert.Equal(t, StatePlaying, p.State)
	assert.Equal(t, "playing", p.State.String())
	assert.Equal(t, "1:05 / 1:01:01", p.Progress())
	assert.Equal(t, "unknown", PlaybackState(9).String())
}

func TestEmptyQueue(t *testing.T) {
	_, ok := Queue{}.Current()
	assert.False(t, ok)
	assert.True(t, QueueItem{Error: "download failed"}.Failed())
}
