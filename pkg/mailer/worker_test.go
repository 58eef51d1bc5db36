package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/go-user-accounts/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func encode(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestWorker_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	w := NewWorker(s, nil)

	job := EmailJob{
		To:       "ada@x.io",
		Template: mailtpl.Welcome,
		Data:     mailtpl.ToMap(mailtpl.EmailData{Name: "Ada", Email: "ada@x.io", AppName: "Accounts"}),
	}
	require.NoError(t, w.Handle(context.Background(), encode(t, job)))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "ada@x.io", s.sent[0].to)
	assert.Equal(t, "Welcome to Accounts, Ada", s.sent[0].subject)
	assert.NotEmpty(t, s.sent[0].html)
}

func TestWorker_RawMessage(t *testing.T) {
	s := &fakeSender{}
	w := NewWorker(s, nil)

	require.NoError(t, w.Handle(context.Background(), encode(t, EmailJob{To: "a@x.io", Subject: "hi", Text: "body"})))
	assert.Equal(t, "hi", s.sent[0].subject)
}

func TestWorker_PermanentFailures(t *testing.T) {
	w := NewWorker(&fakeSender{}, nil)

	for _, body := range [][]byte{
		[]byte("{not json"),
		encode(t, EmailJob{To: "a@x.io"}),
		encode(t, EmailJob{To: "a@x.io", Template: "missing"}),
	} {
		err := w.Handle(context.Background(), body)
		assert.ErrorIs(t, err, ErrPermanent)
	}
}

func TestWorker_SendFailureIsRetryable(t *testing.T) {
	boom := errors.New("mailgun down")
	w := NewWorker(&fakeSender{err: boom}, nil)

	err := w.Handle(context.Background(), encode(t, EmailJob{To: "a@x.io", Subject: "s", Text: "t"}))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrPermanent)
}
