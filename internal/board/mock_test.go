package board

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockBoardRecordsLifecycleOrder(t *testing.T) {
	m := NewMockBoard()
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Erase(ctx))
	require.NoError(t, m.FlashKernel(ctx))
	require.NoError(t, m.FlashApp(ctx, "examples/c_hello"))

	assert.Equal(t, []string{"erase", "flash-kernel", "flash-app:examples/c_hello"}, m.Calls())
}

func TestMockBoardEmitsHelloAsync(t *testing.T) {
	m := NewMockBoard()
	defer m.Close()

	tr, err := m.Serial()
	require.NoError(t, err)

	require.NoError(t, m.FlashApp(context.Background(), "examples/c_hello"))

	data, ok := tr.Expect(regexp.MustCompile(`Hello World!\r\n`), 2*time.Second)
	require.True(t, ok)
	assert.Contains(t, string(data), "Hello World!")
}

func TestMockBoardAlarmOutputShape(t *testing.T) {
	m := NewMockBoard()
	defer m.Close()

	tr, err := m.Serial()
	require.NoError(t, err)
	require.NoError(t, m.FlashApp(context.Background(), "tests/multi_alarm_simple"))

	lineRe := regexp.MustCompile(`(\d+) (\d+) (\d+)\r\n`)
	var count1, count2 int
	for {
		data, ok := tr.Expect(lineRe, 500*time.Millisecond)
		if !ok {
			break
		}
		fields := lineRe.FindSubmatch(data)
		switch string(fields[1]) {
		case "1":
			count1++
		case "2":
			count2++
		}
	}

	assert.Equal(t, 10, count1)
	assert.Equal(t, 5, count2)
}

func TestMockBoardCloseIdempotent(t *testing.T) {
	m := NewMockBoard()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}
