package sources

import "github.com/fwojciec/scanhub"

// Deps are the transports the default adapters are built on.
type Deps struct {
	// Pages returns the page fetcher of one source, sending referer as
	// the Referer header.
	Pages func(referer string) scanhub.Fetcher

	// JSON decodes plain JSON APIs.
	JSON scanhub.JSONFetcher

	// Bypass decodes JSON APIs that sit behind a bot challenge.
	Bypass scanhub.JSONFetcher

	// Limiter paces paginated requests per host.
	Limiter scanhub.DomainLimiter
}

// Default returns the fixed, ordered list of sources served by scanhub.
func Default(d Deps) []scanhub.Source {
	return []scanhub.Source{
		NewComix(d.Bypass, d.Limiter),
		NewMangaPark(d.Pages("https://mangapark.io/")),
		NewAsuraScan(d.Pages("https://asuracomic.net/")),
		NewWeebCentral(d.Pages("https://weebcentral.com/")),
		NewFlameComics(d.Pages("https://flamecomics.xyz/"), d.JSON),
		NewKaliScan(d.Pages("https://kaliscan.com/")),
	}
}
