package goquery_test

import (
	"net/http"
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/goquery"
	"github.com/stretchr/testify/assert"
)

// Ensure Detector implements scanhub.ChallengeDetector at compile time.
var _ scanhub.ChallengeDetector = (*goquery.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("detects interstitial text marker", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Just a moment...</title></head>
<body><h1>Checking your browser before accessing comix.to</h1></body>
</html>`

		assert.True(t, goquery.NewDetector().Detect(html, nil))
	})

	t.Run("detects challenge platform script", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script src="/cdn-cgi/challenge-platform/h/b/orchestrate/jsch/v1"></script></body></html>`

		assert.True(t, goquery.NewDetector().Detect(html, nil))
	})

	t.Run("detects challenge form", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><form id="challenge-form" action="/?__cf_chl_f_tk=abc" method="POST"></form></body></html>`

		assert.True(t, goquery.NewDetector().Detect(html, nil))
	})

	t.Run("detects attention required page", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Attention Required! | Cloudflare</title></head><body></body></html>`

		assert.True(t, goquery.NewDetector().Detect(html, nil))
	})

	t.Run("vendor headers alone do not flag", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Set("Server", "cloudflare")
		header.Set("CF-Ray", "8a1b2c3d4e5f-AMS")
		html := `<html><body><h1>Solo Leveling</h1><a href="/chapter/1">Chapter 1</a></body></html>`

		assert.False(t, goquery.NewDetector().Detect(html, header))
	})

	t.Run("ordinary page mentioning challenge does not flag", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>The Challenge of Heaven</h1></body></html>`

		assert.False(t, goquery.NewDetector().Detect(html, nil))
	})

	t.Run("empty body does not flag", func(t *testing.T) {
		t.Parallel()

		assert.False(t, goquery.NewDetector().Detect("", nil))
	})
}

func TestIsChallenge(t *testing.T) {
	t.Parallel()

	d := goquery.NewDetector()

	assert.True(t, scanhub.IsChallenge(d, &scanhub.ResponseError{StatusCode: 403, Body: "<title>Just a moment...</title>"}))
	assert.False(t, scanhub.IsChallenge(d, &scanhub.ResponseError{StatusCode: 404, Body: "not found"}))
	assert.True(t, scanhub.IsChallenge(nil, scanhub.Errorf(scanhub.ECHALLENGE, "blocked")))
	assert.False(t, scanhub.IsChallenge(d, nil))
}
