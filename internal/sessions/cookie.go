package sessions

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// DefaultCookieName names the session cookie.
const DefaultCookieName = "gw_login_session"

var ErrInvalidCookieConfig = errors.New("session cookie: hash key is required")

type cookieValue struct {
	ID string `json:"id"`
}

// CookieCodec signs, and with a block key encrypts, the session id cookie.
type CookieCodec struct {
	name   string
	maxAge time.Duration
	secure bool
	codec  *securecookie.SecureCookie
}

// NewCookieCodec creates a codec. blockKey may be empty to only sign.
func NewCookieCodec(hashKey, blockKey []byte, maxAge time.Duration, secure bool) (*CookieCodec, error) {
	if len(hashKey) == 0 {
		return nil, ErrInvalidCookieConfig
	}
	if len(blockKey) == 0 {
		blockKey = nil
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	if maxAge > 0 {
		codec.MaxAge(int(maxAge.Seconds()))
	}

	return &CookieCodec{
		name:   DefaultCookieName,
		maxAge: maxAge,
		secure: secure,
		codec:  codec,
	}, nil
}

// Read returns the session id carried by r, if any.
func (c *CookieCodec) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", false
	}

	var v cookieValue
	if err := c.codec.Decode(c.name, cookie.Value, &v); err != nil || v.ID == "" {
		return "", false
	}
	return v.ID, true
}

// Write sets the session id cookie on w.
func (c *CookieCodec) Write(w http.ResponseWriter, id string) error {
	encoded, err := c.codec.Encode(c.name, cookieValue{ID: id})
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     c.name,
		Value:    encoded,
		Path:     "/",
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if c.maxAge > 0 {
		cookie.MaxAge = int(c.maxAge.Seconds())
	}

	http.SetCookie(w, cookie)
	return nil
}

// Clear expires the session cookie.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}
