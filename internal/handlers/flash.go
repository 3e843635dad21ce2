package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookieName = "certbook_flash"

// Flash is a one-time notification shown on the next rendered view.
type Flash struct {
	Level   string
	Message string
}

// IsError reports whether the flash should render with error styling.
func (f Flash) IsError() bool {
	return f.Level == "error"
}

func setFlash(w http.ResponseWriter, level, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(level + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash cookie, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	decoded, decodeErr := base64.RawURLEncoding.DecodeString(cookie.Value)
	if decodeErr != nil {
		return nil
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil
	}
	return &Flash{Level: parts[0], Message: parts[1]}
}
