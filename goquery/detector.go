// Package goquery implements HTML inspection on top of
// github.com/PuerkitoBio/goquery: bot-challenge detection and the small
// extraction helpers shared by the source adapters.
package goquery

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scanhub"
)

var _ scanhub.ChallengeDetector = (*Detector)(nil)

// challengeMarkers are lower-case texts that only appear on interstitial
// bot-challenge pages.
var challengeMarkers = []string{
	"checking your browser",
	"enable javascript and cookies",
	"ddos protection by cloudflare",
	"challenge-platform",
	"cf-chl-bypass",
	"just a moment...",
	"just a moment…",
}

var attentionRequiredRe = regexp.MustCompile(`(?is)attention required.{0,200}cloudflare`)

// Detector identifies bot-challenge pages from their markup.
// CDN vendor headers (Server: cloudflare, CF-Ray) are served on ordinary
// pages too, so they never flag a response on their own.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect reports whether body is a challenge page. header is accepted for
// interface compatibility and carries no weight without a body marker.
func (d *Detector) Detect(body string, _ http.Header) bool {
	if body == "" {
		return false
	}

	lower := strings.ToLower(body)
	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	if attentionRequiredRe.MatchString(body) {
		return true
	}

	// Structural checks are only worth a parse when the page mentions a
	// challenge at all.
	if !strings.Contains(lower, "challenge") {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return false
	}
	return d.hasSelector(doc, "#challenge-form") ||
		d.hasSelector(doc, "#cf-challenge-running") ||
		d.hasSelector(doc, "form[action*='__cf_chl']")
}

// hasSelector checks if the document contains elements matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
