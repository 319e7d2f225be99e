package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Run("json format and level", func(t *testing.T) {
		var buf bytes.Buffer
		Log = newLogger(&buf)

		Configure("warn", "json")
		Log.Info("JUDGE: hidden")
		Log.Warn("JUDGE: shown")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "JUDGE: shown", line["msg"])
		assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
	})

	t.Run("unknown values keep defaults", func(t *testing.T) {
		var buf bytes.Buffer
		Log = newLogger(&buf)

		Configure("loud", "xml")
		assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
	})

	t.Run("nil logger is ignored", func(t *testing.T) {
		Log = nil
		assert.NotPanics(t, func() { Configure("info", "json") })
	})
}
