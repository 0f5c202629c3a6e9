package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}
	ok, err := ComparePassword(hash, "hunter22")
	if err != nil || !ok {
		t.Errorf("ComparePassword(correct) = %v, %v", ok, err)
	}
	ok, err = ComparePassword(hash, "wrong")
	if err != nil || ok {
		t.Errorf("ComparePassword(wrong) = %v, %v", ok, err)
	}
	if _, err := ComparePassword("not-a-hash", "x"); err == nil {
		t.Error("expected error for malformed hash")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("é", 40))
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("HashPassword(80 bytes) error = %v, want ErrInvalidInput", err)
	}
}

func TestSessionCodec_RoundTrip(t *testing.T) {
	c := NewSessionCodec(testSecret, "session", time.Hour, false)
	in := models.Session{UserID: "u1", Email: "a@example.com", Name: "Ada"}
	value, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := c.Decode(value)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if *out != in {
		t.Errorf("Decode() = %+v, want %+v", *out, in)
	}
}

func TestSessionCodec_Rejects(t *testing.T) {
	c := NewSessionCodec(testSecret, "session", time.Hour, false)
	valid, _ := c.Encode(models.Session{UserID: "u1"})
	body, sig, _ := strings.Cut(valid, ".")

	other := NewSessionCodec("ffffffffffffffffffffffffffffffff", "session", time.Hour, false)
	foreign, _ := other.Encode(models.Session{UserID: "u1"})

	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"empty", "", ErrInvalidSession},
		{"no signature", body, ErrInvalidSession},
		{"raw json like the legacy cookie", `{"userId":"u1","email":"a","name":"b"}`, ErrInvalidSession},
		{"tampered body", "e30" + body[3:] + "." + sig, ErrInvalidSession},
		{"tampered signature", body + "." + strings.Repeat("A", len(sig)), ErrInvalidSession},
		{"signed with other secret", foreign, ErrInvalidSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Decode(tt.value); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSessionCodec_Expiry(t *testing.T) {
	c := NewSessionCodec(testSecret, "session", time.Minute, false)
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start }
	value, _ := c.Encode(models.Session{UserID: "u1"})

	c.now = func() time.Time { return start.Add(30 * time.Second) }
	if _, err := c.Decode(value); err != nil {
		t.Fatalf("Decode() before expiry error = %v", err)
	}
	c.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := c.Decode(value); !errors.Is(err, ErrExpiredSession) {
		t.Errorf("Decode() after expiry error = %v, want ErrExpiredSession", err)
	}
}

func TestSessionCodec_CookieWriteRead(t *testing.T) {
	c := NewSessionCodec(testSecret, "sid", time.Hour, true)
	w := httptest.NewRecorder()
	if err := c.Write(w, models.Session{UserID: "u1", Name: "Ada"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("cookies = %+v", cookies)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	s, err := c.Read(r)
	if err != nil || s.UserID != "u1" {
		t.Errorf("Read() = %+v, %v", s, err)
	}

	if _, err := c.Read(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrNoSession) {
		t.Errorf("Read() without cookie error = %v, want ErrNoSession", err)
	}

	w = httptest.NewRecorder()
	c.Clear(w)
	if got := w.Result().Cookies(); len(got) != 1 || got[0].MaxAge >= 0 {
		t.Errorf("Clear() cookies = %+v", got)
	}
}

func TestGenerateCSRFToken(t *testing.T) {
	a, err := GenerateCSRFToken()
	if err != nil {
		t.Fatalf("GenerateCSRFToken() error = %v", err)
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
	b, _ := GenerateCSRFToken()
	if a == b {
		t.Error("GenerateCSRFToken() produced duplicate tokens")
	}
}

func TestVerifyCSRFToken(t *testing.T) {
	tests := []struct {
		name          string
		token, stored string
		want          bool
	}{
		{"match", "abc", "abc", true},
		{"mismatch", "abc", "abd", false},
		{"empty submitted", "", "abc", false},
		{"empty stored", "abc", "", false},
		{"both empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyCSRFToken(tt.token, tt.stored); got != tt.want {
				t.Errorf("VerifyCSRFToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIssueAndCheckCSRF(t *testing.T) {
	w := httptest.NewRecorder()
	token, err := IssueCSRF(w, false)
	if err != nil {
		t.Fatalf("IssueCSRF() error = %v", err)
	}
	cookie := w.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.AddCookie(cookie)
	if err := CheckCSRF(r); !errors.Is(err, ErrCSRFMismatch) {
		t.Errorf("CheckCSRF() without header = %v", err)
	}
	r.Header.Set(CSRFHeaderName, token)
	if err := CheckCSRF(r); err != nil {
		t.Errorf("CheckCSRF() with header = %v", err)
	}
}
