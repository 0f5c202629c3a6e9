package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Weesdome/Boardhub/internal/models"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// DefaultSessionTTL matches the seven-day cookie lifetime.
const DefaultSessionTTL = 7 * 24 * time.Hour

type sessionPayload struct {
	models.Session
	Expires int64 `json:"exp"`
}

// SessionCodec signs and verifies session cookies.
type SessionCodec struct {
	secret []byte
	name   string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessionCodec creates a codec. secret must be kept private; name is the
// cookie name; secure sets the cookie's Secure attribute.
func NewSessionCodec(secret, name string, ttl time.Duration, secure bool) *SessionCodec {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if name == "" {
		name = "session"
	}
	return &SessionCodec{secret: []byte(secret), name: name, ttl: ttl, secure: secure, now: time.Now}
}

// Encode returns the signed cookie value for s.
func (c *SessionCodec) Encode(s models.Session) (string, error) {
	payload, err := json.Marshal(sessionPayload{Session: s, Expires: c.now().Add(c.ttl).Unix()})
	if err != nil {
		return "", fmt.Errorf("auth: encode session: %w", err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + c.sign(body), nil
}

// Decode verifies value and returns the session it carries.
func (c *SessionCodec) Decode(value string) (*models.Session, error) {
	body, sig, ok := strings.Cut(value, ".")
	if !ok || body == "" || sig == "" {
		return nil, ErrInvalidSession
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(body))) {
		return nil, ErrInvalidSession
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrInvalidSession
	}
	var p sessionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ErrInvalidSession
	}
	if p.UserID == "" {
		return nil, ErrInvalidSession
	}
	if c.now().Unix() >= p.Expires {
		return nil, ErrExpiredSession
	}
	return &p.Session, nil
}

func (c *SessionCodec) sign(body string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Read returns the session attached to r.
func (c *SessionCodec) Read(r *http.Request) (*models.Session, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return c.Decode(cookie.Value)
}

// Write sets the session cookie on w.
func (c *SessionCodec) Write(w http.ResponseWriter, s models.Session) error {
	value, err := c.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (c *SessionCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
