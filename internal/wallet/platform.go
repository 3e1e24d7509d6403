package wallet

import (
	"net/url"
	"regexp"
	"strings"
)

// Platform is the class of device the client runs on
type Platform string

const (
	PlatformDesktop Platform = "desktop"
	PlatformMobile  Platform = "mobile"
)

const deepLinkBase = "https://phantom.app/ul/v1/"

var (
	mobileUA  = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)
	iosUA     = regexp.MustCompile(`(?i)iPhone|iPad|iPod`)
	androidUA = regexp.MustCompile(`(?i)Android`)
)

// DetectPlatform classifies a user agent string.
func DetectPlatform(userAgent string) Platform {
	if mobileUA.MatchString(userAgent) {
		return PlatformMobile
	}
	return PlatformDesktop
}

// IsIOS reports whether the user agent is an iOS device.
func IsIOS(userAgent string) bool {
	return iosUA.MatchString(userAgent)
}

// IsAndroid reports whether the user agent is an Android device.
func IsAndroid(userAgent string) bool {
	return androidUA.MatchString(userAgent)
}

// componentEscaper undoes the QueryEscape choices that differ from a browser's
// encodeURIComponent: spaces become %20 and !'()* stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// DeepLink returns the universal link that opens pageURL inside the wallet's companion app.
func DeepLink(pageURL string) string {
	return deepLinkBase + componentEscaper.Replace(url.QueryEscape(pageURL))
}
