package analytics

import "testing"

const (
	chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"
	botUA    = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestIsBot(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{botUA, true},
		{"curl/8.6.0", true},
		{"python-requests/2.32.0", true},
		{"Slackbot-LinkExpanding 1.0", true},
		{chromeUA, false},
		{iphoneUA, false},
	}
	for _, tt := range tests {
		if got := IsBot(tt.ua); got != tt.want {
			t.Errorf("IsBot(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}

func TestClassify_Desktop(t *testing.T) {
	p := Classify(chromeUA)
	if p.Browser != "Chrome" {
		t.Errorf("browser = %q, want Chrome", p.Browser)
	}
	if p.Device != "desktop" {
		t.Errorf("device = %q, want desktop", p.Device)
	}
	if p.Bot {
		t.Error("desktop browser classified as bot")
	}
}

func TestClassify_Mobile(t *testing.T) {
	p := Classify(iphoneUA)
	if p.Device != "mobile" {
		t.Errorf("device = %q, want mobile", p.Device)
	}
}

func TestClassify_Bot(t *testing.T) {
	p := Classify(botUA)
	if !p.Bot {
		t.Error("googlebot not classified as bot")
	}
	if p.Device != "bot" {
		t.Errorf("device = %q, want bot", p.Device)
	}
}

func TestClassify_UnknownAgent(t *testing.T) {
	for _, ua := range []string{"", "Unknown"} {
		p := Classify(ua)
		if p.Browser != "Unknown" || p.OS != "Unknown" {
			t.Errorf("Classify(%q) = %+v, want Unknown browser/OS", ua, p)
		}
	}
}
