package fetcher

import "net/url"

// DefaultUserAgent is a plausible desktop Chrome identity. Several module
// hosts reject obvious script user agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// DefaultAcceptLanguage is the Accept-Language sent with every request.
const DefaultAcceptLanguage = "en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7"

// HostHeaders maps a hostname to extra headers applied to requests for
// that host. Some hosts require a specific Referer or Origin to serve raw
// module files; the table keeps those quirks in configuration instead of
// per-call logic.
type HostHeaders map[string]map[string]string

// RequestHeaders builds the header set for one request. Referer and Origin
// default to the URL's own origin; per-host overrides are applied last and
// win over the defaults.
func RequestHeaders(rawURL, userAgent string, overrides HostHeaders) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	headers := map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "*/*",
		"Accept-Language": DefaultAcceptLanguage,
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return headers
	}

	origin := u.Scheme + "://" + u.Host
	headers["Referer"] = origin
	headers["Origin"] = origin

	if overrides != nil {
		for k, v := range overrides[u.Hostname()] {
			headers[k] = v
		}
	}

	return headers
}
