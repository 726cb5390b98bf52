package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/teacherpoli/backoffice/core"
)

func TestRollbarLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "TEST", TestMode: true})

	logger.Error("saving catalog snapshot", errors.New("disk full"), core.Actor{Email: "admin@x.com"})
	out := buf.String()
	assert.Contains(t, out, "[ERROR] saving catalog snapshot")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "admin@x.com")
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := NewRollbarLogger(log.New(new(bytes.Buffer), "", 0), &core.Config{TestMode: true})
	err := errors.New("boom")

	tests := []struct {
		name      string
		args      []interface{}
		want      []interface{}
		wantActor core.Actor
		wantFound bool
	}{
		{name: "message only", want: []interface{}{"msg"}},
		{name: "error", args: []interface{}{err}, want: []interface{}{"msg", err}},
		{
			name:      "actor is not forwarded",
			args:      []interface{}{core.Actor{Email: "a@x.com"}, err},
			want:      []interface{}{"msg", err},
			wantActor: core.Actor{ID: "a@x.com", Email: "a@x.com"},
			wantFound: true,
		},
		{
			name:      "first actor wins",
			args:      []interface{}{core.Actor{ID: "1", Email: "a@x.com"}, core.Actor{ID: "2"}},
			want:      []interface{}{"msg"},
			wantActor: core.Actor{ID: "1", Email: "a@x.com"},
			wantFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.prepare("msg", tt.args))
			actor, found := extractActor(tt.args)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantActor, actor)
		})
	}
}
