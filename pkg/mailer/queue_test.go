package mailer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type fakeDelivery struct {
	acked, nacked, requeued bool
}

func (d *fakeDelivery) Ack(bool) error { d.acked = true; return nil }

func (d *fakeDelivery) Nack(_, requeue bool) error {
	d.nacked, d.requeued = true, requeue
	return nil
}

func TestSettle(t *testing.T) {
	logger, hook := test.NewNullLogger()

	ok := &fakeDelivery{}
	settle(ok, nil, logger)
	assert.True(t, ok.acked)
	assert.False(t, ok.nacked)

	dropped := &fakeDelivery{}
	settle(dropped, fmt.Errorf("%w: decode", ErrPermanent), logger)
	assert.True(t, dropped.nacked)
	assert.False(t, dropped.requeued)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	retried := &fakeDelivery{}
	settle(retried, errors.New("mailgun down"), logger)
	assert.True(t, retried.nacked)
	assert.True(t, retried.requeued)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPublish_RejectsInvalidJob(t *testing.T) {
	q := &Queue{Name: "emails"}
	assert.ErrorIs(t, q.Publish(context.Background(), EmailJob{To: "a@x.io"}), ErrInvalidJob)
}
