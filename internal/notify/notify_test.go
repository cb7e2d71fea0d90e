package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/talis/internal/notify"
)

func TestRecorderDrain(t *testing.T) {
	ctx := context.Background()
	r := notify.NewRecorder()

	r.Error(ctx, "first", notify.Options{Description: "one"})
	r.Error(ctx, "second", notify.Options{})

	assert.Equal(t, []notify.Notice{
		{Level: notify.LevelError, Message: "first", Description: "one"},
		{Level: notify.LevelError, Message: "second"},
	}, r.Drain())
	assert.Empty(t, r.Drain())
}

func TestFanout(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := notify.NewRecorder()

	notify.Fanout{notify.NewLog(logger), rec}.Error(context.Background(), "reset", notify.Options{Description: "why"})

	assert.Len(t, rec.Drain(), 1)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "msg=reset")
	assert.Contains(t, buf.String(), "description=why")
}
