// Package device derives short human labels from browser User-Agent strings,
// used to annotate credential records with the browser that granted them.
package device

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// DisplayName returns a label like "Chrome on Mac OS X" or "Safari (mobile)".
// Unknown agents come back as "Unknown device".
func (s *Service) DisplayName(userAgentString string) string {
	if strings.TrimSpace(userAgentString) == "" {
		return ""
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.TrimSpace(browser)
	os := strings.TrimSpace(ua.OSInfo().Name)

	switch {
	case browser == "" && os == "":
		return "Unknown device"
	case os == "":
		if ua.Mobile() {
			return fmt.Sprintf("%s (mobile)", browser)
		}
		return browser
	case browser == "":
		return os
	default:
		return fmt.Sprintf("%s on %s", browser, os)
	}
}
