package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/mock"
	scanslog "github.com/fwojciec/scanhub/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFrontpage_FetchSection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Frontpage{
		SourceIDFn: func() string { return "comix" },
		FetchSectionFn: func(ctx context.Context, id string, opts scanhub.FetchOptions) (*scanhub.FrontpageSection, error) {
			return &scanhub.FrontpageSection{ID: id, Items: []scanhub.FrontpageManga{{}, {}, {}}}, nil
		},
	}

	fp := scanslog.NewLoggingFrontpage(inner, logger)
	section, err := fp.FetchSection(context.Background(), "trending", scanhub.FetchOptions{Page: 2})

	require.NoError(t, err)
	assert.Equal(t, "trending", section.ID)
	output := buf.String()
	assert.Contains(t, output, "frontpage section")
	assert.Contains(t, output, "source=comix")
	assert.Contains(t, output, "section=trending")
	assert.Contains(t, output, "page=2")
	assert.Contains(t, output, "count=3")
}
