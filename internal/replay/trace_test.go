package replay

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

func TestReadTrace(t *testing.T) {
	t.Parallel()

	t.Run("columns in any order", func(t *testing.T) {
		t.Parallel()
		src := "frame,x,y,yaw,speed,timestamp,extra\n0,1,2,0.1,3,0.0,z\n1,1.5,2,0.1,3.2,0.033,z\n"
		states, err := ReadTrace(strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, states, 2)
		assert.Equal(t, vehicle.State{X: 1.5, Y: 2, Yaw: 0.1, Speed: 3.2, Timestamp: 0.033, Frame: 1}, states[1])
	})

	t.Run("comments and spaces", func(t *testing.T) {
		t.Parallel()
		src := "# carla run\ntimestamp, frame, x, y, yaw, speed\n0.0, 3, 0, 0, 0, 0\n"
		states, err := ReadTrace(strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, 3, states[0].Frame)
	})

	t.Run("missing column", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTrace(strings.NewReader("timestamp,frame,x,y,speed\n0,0,0,0,0\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "yaw")
	})

	t.Run("non integer frame", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTrace(strings.NewReader("timestamp,frame,x,y,yaw,speed\n0,1.5,0,0,0,0\n"))
		require.Error(t, err)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTrace(strings.NewReader("timestamp,frame,x,y,yaw,speed\n0,1,0,north,0,0\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTrace(strings.NewReader("timestamp,frame,x,y,yaw,speed\n"))
		assert.ErrorIs(t, err, ErrEmptyTrace)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTrace(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyTrace)
	})
}

func TestLoadTrace(t *testing.T) {
	name := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(name, []byte("timestamp,frame,x,y,yaw,speed\n0,0,0,0,0,0\n0.1,1,0,0,0,1\n"), 0644))

	states, err := LoadTrace(name)
	require.NoError(t, err)
	assert.Len(t, states, 2)

	_, err = LoadTrace(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestWriteCommands(t *testing.T) {
	result, err := New(newLoop(t, control.DefaultGains())).Run(context.Background(), []vehicle.State{
		{Frame: 0},
		{Frame: 1, Timestamp: 0.05},
	}, Config{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCommands(&buf, result))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "frame,timestamp,throttle,brake,steer", lines[0])
	assert.Equal(t, "0,0.000000,0.000000,0.000000,0.000000", lines[1])
	assert.Equal(t, "1,0.050000,1.000000,0.000000,0.000000", lines[2])
}
