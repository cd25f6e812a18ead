package main

import (
	"testing"

	"ratarch/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayerExpandsSteps(t *testing.T) {
	hold := float32(0.25)
	rp := newReplayer(&config.Script{Steps: []config.ScriptStep{
		{Frames: 2, Forward: true, Yaw: 90, Pitch: -10},
		{Frames: 2, Throw: &hold, Pick: &config.Ray{Direction: config.Vec3{0, -2, 0}}},
	}})

	var got []frameInput
	for {
		in, ok := rp.next()
		if !ok {
			break
		}
		got = append(got, in)
	}

	require.Len(t, got, 4)
	assert.True(t, got[0].Input.Forward)
	assert.True(t, got[1].Input.Forward)
	assert.False(t, got[2].Input.Forward)
	assert.Equal(t, float32(90), got[1].Yaw)
	assert.Equal(t, float32(-10), got[1].Pitch)

	// one-shot actions only fire on the first frame of their step
	require.NotNil(t, got[2].Throw)
	assert.Equal(t, hold, *got[2].Throw)
	require.NotNil(t, got[2].Pick)
	assert.InDelta(t, -1, got[2].Pick.Direction.Y, 1e-6)
	assert.Nil(t, got[3].Throw)
	assert.Nil(t, got[3].Pick)
}
