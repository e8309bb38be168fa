package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

func newChat(msgs *stubMessages, projects *stubProjects, rt *stubRealtime) ports.ChatService {
	return NewChatService(msgs, projects, rt, zerolog.Nop())
}

func TestChat_MarkAsReadClearsUnread(t *testing.T) {
	msgs := &stubMessages{}
	chat := newChat(msgs, newStubProjects(), newStubRealtime())
	ctx := context.Background()

	for _, content := range []string{"Bonjour", "Une question"} {
		_, err := chat.Send(ctx, ports.SendMessageInput{ProjectID: "p1", Content: content, SenderRole: domain.SenderClient})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, chat.UnreadCount(ctx, "p1", domain.SenderAdmin))
	assert.Equal(t, 0, chat.UnreadCount(ctx, "p1", domain.SenderClient))
	assert.Equal(t, 2, chat.TotalUnread(ctx))

	require.NoError(t, chat.MarkAsRead(ctx, "p1", domain.SenderAdmin))
	assert.Equal(t, 0, chat.UnreadCount(ctx, "p1", domain.SenderAdmin))
	assert.True(t, chat.ReadTracking())
}

func TestChat_WithoutReadColumnUnreadIsAlwaysZero(t *testing.T) {
	msgs := &stubMessages{noRead: true}
	chat := newChat(msgs, newStubProjects(), newStubRealtime())
	ctx := context.Background()

	m, err := chat.Send(ctx, ports.SendMessageInput{ProjectID: "p1", Content: "Bonjour", SenderRole: domain.SenderClient})
	require.NoError(t, err)
	assert.Nil(t, m.Read)
	assert.False(t, chat.ReadTracking())

	assert.Equal(t, 0, chat.UnreadCount(ctx, "p1", domain.SenderAdmin))
	require.NoError(t, chat.MarkAsRead(ctx, "p1", domain.SenderAdmin))
	assert.Equal(t, 0, chat.TotalUnread(ctx))
}

func TestChat_SendValidates(t *testing.T) {
	msgs := &stubMessages{}
	chat := newChat(msgs, newStubProjects(), newStubRealtime())

	_, err := chat.Send(context.Background(), ports.SendMessageInput{ProjectID: "p1"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, msgs.creates)
}

func TestChat_Conversations(t *testing.T) {
	msgs := &stubMessages{}
	projects := newStubProjects()
	projects.put(domain.Project{ID: "p1", Name: "Loft", ClientName: "Durand"})
	projects.put(domain.Project{ID: "p2", Name: "Villa"})
	projects.put(domain.Project{ID: "p3", Name: "Silent"})
	chat := newChat(msgs, projects, newStubRealtime())
	ctx := context.Background()

	_, _ = chat.Send(ctx, ports.SendMessageInput{ProjectID: "p1", Content: "a", SenderRole: domain.SenderClient, SenderName: "Mme Durand"})
	_, _ = chat.Send(ctx, ports.SendMessageInput{ProjectID: "p2", Content: "b"})
	_, _ = chat.Send(ctx, ports.SendMessageInput{ProjectID: "p1", Content: "c"})

	convs := chat.Conversations(ctx)
	require.Len(t, convs, 2)
	assert.Equal(t, "p1", convs[0].ProjectID)
	assert.Equal(t, "Mme Durand", convs[0].ClientName)
	assert.Equal(t, 2, convs[0].MessageCount)
	assert.Equal(t, 1, convs[0].UnreadCount)
	assert.Equal(t, "Client", convs[1].ClientName)
}

func TestChat_SubscribeReplacesPreviousChannel(t *testing.T) {
	rt := newStubRealtime()
	chat := newChat(&stubMessages{}, newStubProjects(), rt)
	ctx := context.Background()

	var got []string
	require.NoError(t, chat.Subscribe(ctx, "p1", func(m domain.Message) { got = append(got, "first:"+m.Content) }))
	require.NoError(t, chat.Subscribe(ctx, "p1", func(m domain.Message) { got = append(got, "second:"+m.Content) }))
	assert.Equal(t, 1, rt.open())

	rt.publish(tableMessages, ports.ChangeInsert, "project_id", "p1", domain.Message{ProjectID: "p1", Content: "hi"})
	assert.Equal(t, []string{"second:hi"}, got)

	chat.Unsubscribe()
	assert.Equal(t, 0, rt.open())
}
