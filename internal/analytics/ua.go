package analytics

import (
	"strings"

	"github.com/mssola/useragent"
)

// Profile is what can be inferred from a raw User-Agent string.
type Profile struct {
	Browser string
	OS      string
	Device  string
	Bot     bool
}

// Lowercase fragments checked against the User-Agent when the parser
// alone says "not a bot".
var botSignatures = []string{
	"bot",
	"spider",
	"crawl",

	// Link-preview / unfurler bots
	"facebookexternalhit",
	"facebot",
	"whatsapp",
	"slackbot",
	"telegrambot",
	"applebot",
	"twitterbot",
	"linkedinbot",
	"preview",

	// HTTP client libraries (not real browsers)
	"go-http-client/",
	"curl/",
	"wget/",
	"python-requests/",
	"python-urllib/",
	"okhttp/",
	"java/",
	"libwww-perl/",

	// Headless / renderers
	"headlesschrome/",
	"phantomjs",
	"chrome-lighthouse",
}

// IsBot reports whether the visit came from an automated client: a
// crawler, a link unfurler, or a bare HTTP library rather than a browser.
func IsBot(rawUA string) bool {
	ua := useragent.New(rawUA)
	if ua.Bot() {
		return true
	}
	lower := strings.ToLower(rawUA)
	for _, sig := range botSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// Classify parses a raw User-Agent into a Profile. Unparseable agents come
// back as "Unknown" rather than empty strings.
func Classify(rawUA string) Profile {
	p := Profile{Browser: "Unknown", OS: "Unknown", Device: "desktop"}
	if rawUA == "" || rawUA == "Unknown" {
		p.Device = "unknown"
		return p
	}
	if IsBot(rawUA) {
		p.Bot = true
		p.Device = "bot"
	}

	ua := useragent.New(rawUA)
	if name, _ := ua.Browser(); name != "" {
		p.Browser = name
	}
	if os := ua.OSInfo().Name; os != "" {
		p.OS = os
	}
	if !p.Bot && ua.Mobile() {
		p.Device = "mobile"
	}
	return p
}
