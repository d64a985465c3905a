package captions

// CredentialSource is one way to authenticate a subtitle download. Sources
// are tried in order; the zero value means anonymous access.
type CredentialSource struct {
	CookieFile string // path to a Netscape cookies.txt export
	Browser    string // browser profile to read cookies from ("chrome", "edge", ...)
}

// Anonymous is the credential-free source every chain starts with.
var Anonymous = CredentialSource{}

// Args returns the yt-dlp flags for this source, or nothing for anonymous.
func (c CredentialSource) Args() []string {
	switch {
	case c.CookieFile != "":
		return []string{"--cookies", c.CookieFile}
	case c.Browser != "":
		return []string{"--cookies-from-browser", c.Browser}
	default:
		return nil
	}
}

// Chain builds the ordered credential list for a downloader: anonymous
// first, then the cookie file (when configured), then each browser.
func Chain(cookieFile string, browsers []string) []CredentialSource {
	chain := []CredentialSource{Anonymous}
	if cookieFile != "" {
		chain = append(chain, CredentialSource{CookieFile: cookieFile})
	}
	for _, b := range browsers {
		if b != "" {
			chain = append(chain, CredentialSource{Browser: b})
		}
	}
	return chain
}
