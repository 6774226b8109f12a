package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailgun_Send(t *testing.T) {
	var (
		mu   sync.Mutex
		path string
		form = map[string]string{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		path = r.URL.Path
		for _, k := range []string{"from", "to", "subject", "text", "html"} {
			form[k] = r.FormValue(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<1@mg.example.com>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	m := NewMailgun("mg.example.com", "key-test", "Users <no-reply@example.com>").WithAPIBase(srv.URL + "/v3")
	err := m.Send(context.Background(), "ann@example.com", "Welcome", "hi", "<p>hi</p>")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/v3/mg.example.com/messages", path)
	assert.Equal(t, "ann@example.com", form["to"])
	assert.Equal(t, "Welcome", form["subject"])
	assert.Equal(t, "<p>hi</p>", form["html"])
}

func TestMailgun_SendRejectsEmptyRecipient(t *testing.T) {
	m := NewMailgun("mg.example.com", "key-test", "no-reply@example.com")
	assert.Error(t, m.Send(context.Background(), "", "s", "t", ""))
}
