// Package formreplay carries a rejected form submission across a redirect.
//
// When a POST fails validation the handler redirects back to itself and the
// next GET must redisplay exactly what the user typed, together with the
// field-level errors. Both travel in a single-use cookie with the same codec
// the flash package uses: consumed and cleared on the very next read.
package formreplay

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/requestmeta"
)

// CookieName is the canonical cookie used for validation replay state.
const CookieName = "contacts_form_replay"

// maxAge bounds how long an unconsumed replay survives. The redisplay is the
// very next GET; ten minutes keeps a user who wanders off from finding a
// stale rejected submission painted over a fresh screen later.
const maxAge = 600

// Replay holds one rejected submission. Values keeps the submitted form
// fields (collection fields keep their positional names, e.g.
// "phones[1].number"); Errors maps field names to message keys.
type Replay struct {
	Values map[string][]string `json:"formResponses,omitempty"`
	Errors map[string]string   `json:"fieldErrors,omitempty"`
}

// HasErrors reports whether the replay carries any field errors.
func (rp Replay) HasErrors() bool {
	return len(rp.Errors) > 0
}

// Value returns the first submitted value for a field name.
func (rp Replay) Value(field string) string {
	values, ok := rp.Values[field]
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0]
}

// Write stores a replay cookie for the next page render.
func Write(w http.ResponseWriter, r *http.Request, replay Replay) {
	WriteWithPolicy(w, r, replay, requestmeta.SchemePolicy{})
}

// WriteWithPolicy stores a replay cookie for the next page render.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, replay Replay, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	if len(replay.Values) == 0 && len(replay.Errors) == 0 {
		return
	}
	payload, err := json.Marshal(replay)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// ReadAndClear reads and clears the replay cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Replay, bool) {
	if r == nil {
		return Replay{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Replay{}, false
	}
	if w != nil {
		Clear(w, r)
	}
	return decodeReplay(cookie.Value)
}

// Clear expires any replay cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	ClearWithPolicy(w, r, requestmeta.SchemePolicy{})
}

// ClearWithPolicy expires any replay cookie.
func ClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decodeReplay(raw string) (Replay, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Replay{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Replay{}, false
	}
	var replay Replay
	if err := json.Unmarshal(decoded, &replay); err != nil {
		return Replay{}, false
	}
	if len(replay.Values) == 0 && len(replay.Errors) == 0 {
		return Replay{}, false
	}
	return replay, true
}
