package emailsvc

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teacherpoli/backoffice/core"
)

func testConfig() *core.Config {
	return &core.Config{
		AppName:          "TeacherPoli",
		SendgridApiKey:   "SG.test",
		DefaultFromEmail: mail.Address{Name: "TeacherPoli", Address: "noreply@teacherpoli.com"},
	}
}

func welcome() *core.EmailMessage {
	return &core.EmailMessage{
		To:      []mail.Address{{Name: "Ana", Address: "ana@x.com"}},
		Subject: "Bem-vindo(a)",
		Body:    "Olá Ana",
	}
}

func TestConsoleService(t *testing.T) {
	svc := NewConsoleServiceMock(testConfig())

	svc.SendMessages(welcome(), &core.EmailMessage{Subject: "no recipients", Body: "x"})
	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@x.com", sent[0].To[0].Address)

	rendered := svc.render(*welcome())
	assert.Contains(t, rendered, "Subject: [TeacherPoli] Bem-vindo(a)")
	assert.Contains(t, rendered, `To: "Ana" <ana@x.com>`)
	assert.Contains(t, rendered, "Olá Ana")
}

func TestSendgridService_send(t *testing.T) {
	var payload map[string]interface{}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		if r.URL.Path != endpoint {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	svc := NewSendgridService(testConfig(), core.NopLogger)
	svc.host = srv.URL

	require.NoError(t, svc.send(*welcome()))
	assert.Equal(t, "Bearer SG.test", auth)
	personalizations := payload["personalizations"].([]interface{})
	first := personalizations[0].(map[string]interface{})
	assert.Equal(t, "[TeacherPoli] Bem-vindo(a)", first["subject"])
	content := payload["content"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "text/plain", content["type"])
	assert.Equal(t, "Olá Ana", content["value"])
}

func TestSendgridService_send_rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewSendgridService(testConfig(), core.NopLogger)
	svc.host = srv.URL
	assert.Error(t, svc.send(*welcome()))
}
