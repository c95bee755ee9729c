package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/mailer"
)

func TestContactService_RequiresAllFields(t *testing.T) {
	svc := NewContactService(&fakePublisher{}, "inbox@thinkel.dev", true, nil)
	err := svc.Submit(context.Background(), ContactInput{Name: "Ana", Email: "ana@example.com"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, MsgContactRequired, err.(*apperr.Error).Message)
}

func TestContactService_Enqueues(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewContactService(pub, "inbox@thinkel.dev", true, nil)

	require.NoError(t, svc.Submit(context.Background(), ContactInput{Name: "Ana", Email: "ana@example.com", Message: " hola "}))
	require.Len(t, pub.bodies, 1)
	job, ok := pub.bodies[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "inbox@thinkel.dev", job.To)
	assert.Equal(t, "ana@example.com", job.ReplyTo)
	assert.Equal(t, "hola", job.Data["Message"])
}

func TestContactService_DegradesSilently(t *testing.T) {
	in := ContactInput{Name: "Ana", Email: "ana@example.com", Message: "hola"}

	disabled := &fakePublisher{}
	assert.NoError(t, NewContactService(disabled, "inbox@thinkel.dev", false, nil).Submit(context.Background(), in))
	assert.Empty(t, disabled.bodies)

	assert.NoError(t, NewContactService(nil, "inbox@thinkel.dev", true, nil).Submit(context.Background(), in))

	failing := &fakePublisher{err: errBoom}
	assert.NoError(t, NewContactService(failing, "inbox@thinkel.dev", true, nil).Submit(context.Background(), in))
}
