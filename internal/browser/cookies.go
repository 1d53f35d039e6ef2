package browser

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
)

const defaultCookieDomain = "glints.com"

//Cookie represents a browser cookie from whatever export format the user has.
//Expiry aliases cover Selenium dumps, Chrome extensions and playwright itself.
type Cookie struct {
	Name           string  `json:"name"`
	Value          string  `json:"value"`
	Domain         string  `json:"domain"`
	Path           string  `json:"path"`
	Expires        float64 `json:"expires"`
	Expiry         float64 `json:"expiry"`
	ExpirationDate float64 `json:"expirationDate"`
	HTTPOnly       bool    `json:"httpOnly"`
	Secure         bool    `json:"secure"`
	SameSite       string  `json:"sameSite"`
}

//LoadCookies accepts either a path to a cookies file (JSON array, JSONL, or
//Netscape cookies.txt) or a raw "a=1; b=2" header string, and returns cookies
//ready to inject into a browser context.
func LoadCookies(arg string) ([]playwright.OptionalCookie, error) {
	if arg == "" {
		return nil, nil
	}

	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		//not a file, treat the argument as a Cookie header string
		return toPlaywright(parseCookieHeader(arg)), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}

	if cookies := parseJSON(data); len(cookies) > 0 {
		return toPlaywright(cookies), nil
	}

	if cookies := parseJSONL(data); len(cookies) > 0 {
		return toPlaywright(cookies), nil
	}

	return toPlaywright(parseNetscape(data)), nil
}

func parseJSON(data []byte) []Cookie {
	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err == nil {
		return named(cookies)
	}

	//a single object export is also accepted
	var one Cookie
	if err := json.Unmarshal(data, &one); err == nil && one.Name != "" {
		return []Cookie{one}
	}
	return nil
}

func parseJSONL(data []byte) []Cookie {
	var cookies []Cookie
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var c Cookie
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			continue
		}
		if c.Name != "" {
			cookies = append(cookies, c)
		}
	}
	return cookies
}

//parseNetscape reads the classic cookies.txt layout:
//domain \t flag \t path \t secure \t expiry \t name \t value
func parseNetscape(data []byte) []Cookie {
	var cookies []Cookie
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 7 {
			continue
		}
		expiry, _ := strconv.ParseFloat(parts[4], 64)
		c := Cookie{
			Domain:  strings.TrimLeft(parts[0], "."),
			Path:    parts[2],
			Secure:  strings.EqualFold(parts[3], "TRUE"),
			Expires: expiry,
			Name:    parts[5],
			Value:   parts[6],
		}
		if c.Name != "" {
			cookies = append(cookies, c)
		}
	}
	return cookies
}

//parseCookieHeader turns "a=1; b=2" into cookies pinned to the site domain.
func parseCookieHeader(s string) []Cookie {
	var cookies []Cookie
	for _, part := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies = append(cookies, Cookie{
			Name:   name,
			Value:  strings.TrimSpace(value),
			Domain: defaultCookieDomain,
			Path:   "/",
		})
	}
	return cookies
}

func named(cookies []Cookie) []Cookie {
	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name != "" {
			out = append(out, c)
		}
	}
	return out
}

func toPlaywright(cookies []Cookie) []playwright.OptionalCookie {
	pwCookies := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		pwCookies[i] = c.ToPlayWright()
	}
	return pwCookies
}

func (c Cookie) ToPlayWright() playwright.OptionalCookie {
	domain := c.Domain
	if domain == "" {
		domain = defaultCookieDomain
	}
	path := c.Path
	if path == "" {
		path = "/"
	}

	pwCookie := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(domain),
		Path:   playwright.String(path),
	}

	if exp := c.expiry(); exp > 0 {
		pwCookie.Expires = playwright.Float(exp)
	}

	if c.HTTPOnly {
		pwCookie.HttpOnly = playwright.Bool(true)
	}

	if c.Secure {
		pwCookie.Secure = playwright.Bool(true)
	}

	switch c.SameSite {
	case "Lax", "lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict", "strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None", "none", "no_restriction":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}

	return pwCookie
}

func (c Cookie) expiry() float64 {
	switch {
	case c.Expires > 0:
		return c.Expires
	case c.Expiry > 0:
		return c.Expiry
	default:
		return c.ExpirationDate
	}
}
