package sources_test

import (
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/mock"
	"github.com/fwojciec/scanhub/sources"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	var referers []string
	srcs := sources.Default(sources.Deps{
		Pages: func(referer string) scanhub.Fetcher {
			referers = append(referers, referer)
			return &mock.Fetcher{}
		},
	})

	names := make([]string, len(srcs))
	for i, src := range srcs {
		names[i] = src.Name()
	}
	assert.Equal(t, []string{"Comix", "MangaPark", "AsuraScan", "WeebCentral", "FlameComics", "KaliScan"}, names)
	assert.Contains(t, referers, "https://asuracomic.net/")
	assert.Len(t, referers, 5)
}
