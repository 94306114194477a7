package browser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

// fileCookie is one entry of an exported browser cookie dump. Cookies
// are only ever loaded from disk; acquiring them (logging in) is not
// this program's job.
type fileCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// LoadCookies reads a JSON cookie dump and converts it for playwright.
func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []fileCookie
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not parse cookie file %s: %w", path, err)
	}

	cookies := make([]playwright.OptionalCookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, c.toOptional())
	}
	return cookies, nil
}

func (c fileCookie) toOptional() playwright.OptionalCookie {
	oc := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(c.Path),
	}

	if c.Expires > 0 {
		oc.Expires = playwright.Float(c.Expires)
	}
	if c.HTTPOnly {
		oc.HttpOnly = playwright.Bool(true)
	}
	if c.Secure {
		oc.Secure = playwright.Bool(true)
	}

	switch c.SameSite {
	case "Lax":
		oc.SameSite = playwright.SameSiteAttributeLax
	case "Strict":
		oc.SameSite = playwright.SameSiteAttributeStrict
	case "None":
		oc.SameSite = playwright.SameSiteAttributeNone
	}

	return oc
}
