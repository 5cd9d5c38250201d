package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testHashKey  = []byte("0123456789abcdef0123456789abcdef")
	testBlockKey = []byte("abcdef0123456789")
)

func TestCookieCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		blockKey []byte
	}{
		{name: "signed", blockKey: nil},
		{name: "signed and encrypted", blockKey: testBlockKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewCookieCodec(testHashKey, tt.blockKey, time.Hour, false)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			require.NoError(t, codec.Write(rec, "sid-123"))

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, DefaultCookieName, cookies[0].Name)
			assert.True(t, cookies[0].HttpOnly)
			assert.Equal(t, 3600, cookies[0].MaxAge)
			assert.NotContains(t, cookies[0].Value, "sid-123")

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(cookies[0])

			id, ok := codec.Read(req)
			assert.True(t, ok)
			assert.Equal(t, "sid-123", id)
		})
	}
}

func TestCookieCodec_RejectsTampered(t *testing.T) {
	codec, err := NewCookieCodec(testHashKey, nil, time.Hour, false)
	require.NoError(t, err)
	other, err := NewCookieCodec([]byte("another-hash-key-another-hash-ke"), nil, time.Hour, false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, other.Write(rec, "sid-123"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	_, ok := codec.Read(req)
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "garbage"})
	_, ok = codec.Read(req)
	assert.False(t, ok)

	_, ok = codec.Read(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestCookieCodec_Clear(t *testing.T) {
	codec, err := NewCookieCodec(testHashKey, nil, 0, true)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	codec.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
}

func TestNewCookieCodec_RequiresHashKey(t *testing.T) {
	_, err := NewCookieCodec(nil, nil, time.Hour, false)
	assert.ErrorIs(t, err, ErrInvalidCookieConfig)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
