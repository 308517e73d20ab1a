package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/internal/domain/entity"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
)

var messagesNow = time.Date(2024, time.March, 10, 18, 30, 0, 0, time.UTC)

func newMessages(repo *fakeMessageRepo) *MessageUseCase {
	uc := NewMessageUseCase(repo, time.UTC)
	uc.now = func() time.Time { return messagesNow }
	return uc
}

func seedInbox() *fakeMessageRepo {
	repo := newFakeMessageRepo()
	old := messagesNow.Add(-48 * time.Hour)
	repo.contacts = []entity.Contact{
		{ID: "c1", Name: "Koffi Yao", LastMessage: "Bonjour", LastMessageDate: &old, UnreadCount: 2},
		{ID: "c2", Name: "Awa Traoré", LastMessage: "Merci", LastMessageDate: &old},
	}
	repo.threads["c1"] = []entity.Message{
		{ID: "m1", Content: "Bonjour", SenderID: "c1", ReceiverID: "buyer-1", CreatedAt: old},
		{ID: "m2", Content: "Salut", SenderID: "buyer-1", ReceiverID: "c1", CreatedAt: old},
	}
	repo.threads["c2"] = []entity.Message{
		{ID: "m3", Content: "Merci", SenderID: "c2", ReceiverID: "buyer-1", CreatedAt: old},
	}
	return repo
}

func TestMessageUseCase_MountSelectsFirstContact(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}

	result, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	snap := result.Snapshot
	assert.Equal(t, MessagesThreadLoaded, snap.State)
	assert.Equal(t, "c1", snap.SelectedContactID)
	require.NotNil(t, snap.SelectedContact)
	assert.Equal(t, "KY", snap.SelectedContact.Initials)
	require.Len(t, snap.Messages, 2)
	assert.False(t, snap.Messages[0].Mine)
	assert.True(t, snap.Messages[1].Mine)
	assert.Equal(t, "m2", snap.ScrollTo)
	assert.Equal(t, 1, snap.Revision)
	assert.Nil(t, result.Notice)
}

func TestMessageUseCase_MountWithoutContacts(t *testing.T) {
	repo := newFakeMessageRepo()
	uc := newMessages(repo)

	result, err := uc.Mount(context.Background(), &Workspace{}, buyer)
	require.NoError(t, err)

	assert.Equal(t, MessagesContactsLoaded, result.Snapshot.State)
	assert.Empty(t, result.Snapshot.SelectedContactID)
	assert.Zero(t, repo.count("thread"))
}

func TestMessageUseCase_WhitespaceSendIssuesNoRequest(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := uc.Send(context.Background(), ws, buyer, SendInput{Content: content})
		assert.True(t, errors.Is(err, errors.CodeValidation))
	}
	assert.Zero(t, repo.count("send"))
}

func TestMessageUseCase_WhitespaceSendBeforeMount(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)

	_, err := uc.Send(context.Background(), &Workspace{}, buyer, SendInput{Content: "  "})

	assert.True(t, errors.Is(err, errors.CodeValidation))
	assert.Zero(t, repo.count("contacts"))
	assert.Zero(t, repo.count("send"))
}

func TestMessageUseCase_SendPatchesOnlyTheReceiver(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	result, err := uc.Send(context.Background(), ws, buyer, SendInput{Content: "Je prends 10 kg"})
	require.NoError(t, err)

	require.Len(t, repo.sent, 1)
	assert.Equal(t, entity.SendMessageInput{ReceiverID: "c1", Content: "Je prends 10 kg"}, repo.sent[0])

	snap := result.Snapshot
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, "sent-c1", snap.Messages[2].ID)
	assert.Equal(t, "sent-c1", snap.ScrollTo)
	assert.Equal(t, 2, snap.Revision)

	contacts := ws.messagesView().Contacts()
	assert.Equal(t, "Je prends 10 kg", contacts[0].LastMessage)
	require.NotNil(t, contacts[0].LastMessageDate)
	assert.Equal(t, messagesNow, *contacts[0].LastMessageDate)
	assert.Equal(t, repo.contacts[1], contacts[1])
	assert.Equal(t, "18:30", snap.Contacts[0].LastMessageAt)
	assert.True(t, snap.Contacts[0].LocallyPatched)
	assert.False(t, snap.Contacts[1].LocallyPatched)
}

func TestMessageUseCase_PatchHoldsUntilNextContactsFetch(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	_, err = uc.Send(context.Background(), ws, buyer, SendInput{Content: "Disponible demain ?"})
	require.NoError(t, err)

	_, err = uc.Select(context.Background(), ws, buyer, "c2")
	require.NoError(t, err)
	assert.Equal(t, "Disponible demain ?", ws.messagesView().Contacts()[0].LastMessage, "selecting does not refetch contacts")

	repo.contacts[0].LastMessage = "Oui, demain"
	_, err = uc.Refresh(context.Background(), ws, buyer)
	require.NoError(t, err)
	assert.Equal(t, "Oui, demain", ws.messagesView().Contacts()[0].LastMessage)
}

func TestMessageUseCase_SelectReplacesThread(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	result, err := uc.Select(context.Background(), ws, buyer, "c2")
	require.NoError(t, err)

	assert.Equal(t, "c2", result.Snapshot.SelectedContactID)
	require.Len(t, result.Snapshot.Messages, 1)
	assert.Equal(t, "m3", result.Snapshot.ScrollTo)
	assert.Equal(t, 2, result.Snapshot.Revision)
}

func TestMessageUseCase_SelectUnknownContact(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)
	threads := repo.count("thread")

	_, err = uc.Select(context.Background(), ws, buyer, "ghost")

	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Equal(t, threads, repo.count("thread"))
}

func TestMessageUseCase_FailedThreadKeepsPriorState(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	repo.threadErr = errBackendDown
	result, err := uc.Select(context.Background(), ws, buyer, "c2")

	require.Error(t, err)
	require.NotNil(t, result.Notice)
	assert.Equal(t, response.NoticeDestructive, result.Notice.Variant)
	assert.Equal(t, "Impossible de charger les messages", result.Notice.Description)
	assert.Equal(t, "c1", result.Snapshot.SelectedContactID)
	assert.Len(t, result.Snapshot.Messages, 2)
	assert.Equal(t, MessagesThreadLoaded, result.Snapshot.State)
}

func TestMessageUseCase_FailedContactsKeepsPriorState(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	repo.contactsErr = errBackendDown
	result, err := uc.Refresh(context.Background(), ws, buyer)

	require.Error(t, err)
	assert.Equal(t, "Impossible de charger les contacts", result.Notice.Description)
	assert.Len(t, result.Snapshot.Contacts, 2)
	assert.Equal(t, MessagesThreadLoaded, result.Snapshot.State)
}

func TestMessageUseCase_FailedSend(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	repo.sendErr = errBackendDown
	result, err := uc.Send(context.Background(), ws, buyer, SendInput{Content: "Bonjour"})

	require.Error(t, err)
	assert.Equal(t, "Impossible d'envoyer le message", result.Notice.Description)
	assert.Len(t, result.Snapshot.Messages, 2)
	assert.Equal(t, "Bonjour", ws.messagesView().Contacts()[0].LastMessage)
	assert.False(t, result.Snapshot.Contacts[0].LocallyPatched)
}

func TestMessageUseCase_StaleThreadIsDiscarded(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)

	gate := make(chan struct{})
	repo.mu.Lock()
	repo.gate["c1"] = gate
	repo.started = make(chan string, 1)
	started := repo.started
	repo.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		uc.Select(context.Background(), ws, buyer, "c1")
	}()
	<-started

	_, err = uc.Select(context.Background(), ws, buyer, "c2")
	require.NoError(t, err)

	close(gate)
	<-done

	snap := uc.Snapshot(ws, buyer)
	assert.Equal(t, "c2", snap.SelectedContactID)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "m3", snap.Messages[0].ID)
}

func TestMessageUseCase_RemountStartsOver(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}
	_, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)
	_, err = uc.Select(context.Background(), ws, buyer, "c2")
	require.NoError(t, err)

	result, err := uc.Mount(context.Background(), ws, buyer)
	require.NoError(t, err)
	assert.Equal(t, "c1", result.Snapshot.SelectedContactID)
	assert.Equal(t, 1, result.Snapshot.Revision)
}

func TestMessageUseCase_SendToOtherContactSelectsItFirst(t *testing.T) {
	repo := seedInbox()
	uc := newMessages(repo)
	ws := &Workspace{}

	result, err := uc.Send(context.Background(), ws, buyer, SendInput{ContactID: "c2", Content: "Bonsoir"})
	require.NoError(t, err)

	assert.Equal(t, "c2", result.Snapshot.SelectedContactID)
	require.Len(t, repo.sent, 1)
	assert.Equal(t, "c2", repo.sent[0].ReceiverID)
	assert.Equal(t, "sent-c2", result.Snapshot.ScrollTo)
}
