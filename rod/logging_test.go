package rod_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/dropwatch"
	"github.com/fwojciec/dropwatch/mock"
	"github.com/fwojciec/dropwatch/rod"
	"github.com/stretchr/testify/assert"
)

func TestLoggingClassifier_Classify(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Classifier{
		ClassifyFn: func(context.Context, string) dropwatch.Verdict {
			return dropwatch.VerdictBlocked
		},
	}

	c := rod.NewLoggingClassifier(inner, logger)
	verdict := c.Classify(context.Background(), "https://gofile.io/d/abc")

	assert.Equal(t, dropwatch.VerdictBlocked, verdict)
	output := buf.String()
	assert.Contains(t, output, "classify")
	assert.Contains(t, output, "url=https://gofile.io/d/abc")
	assert.Contains(t, output, "verdict=blocked")
	assert.Contains(t, output, "duration=")
}
