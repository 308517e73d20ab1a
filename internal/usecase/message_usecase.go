package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
	"agriconnect/pkg/utils"
)

type MessagesState string

const (
	MessagesIdle            MessagesState = "idle"
	MessagesContactsLoading MessagesState = "contacts_loading"
	MessagesContactsLoaded  MessagesState = "contacts_loaded"
	MessagesThreadLoading   MessagesState = "messages_loading"
	MessagesThreadLoaded    MessagesState = "messages_loaded"
)

const (
	msgContactsFailed = "Impossible de charger les contacts"
	msgThreadFailed   = "Impossible de charger les messages"
	msgSendFailed     = "Impossible d'envoyer le message"
	msgEmptyMessage   = "Le message ne peut pas être vide"
	msgNoConversation = "Aucune conversation sélectionnée"
	previewLength     = 40
)

// contactPatch is a local edit of a contact's preview made after a send. It
// wins over the authoritative snapshot until the next contacts fetch.
type contactPatch struct {
	lastMessage     string
	lastMessageDate time.Time
}

// MessagesView is the inbox of one session. The mutex is never held across a
// backend call; every fetch records a generation and its result is dropped
// when a newer fetch of the same kind started meanwhile.
type MessagesView struct {
	mu sync.Mutex

	state  MessagesState
	stable MessagesState

	contacts []entity.Contact
	patches  map[string]contactPatch

	selectedID string
	messages   []entity.Message
	revision   int

	contactsGen uint64
	threadGen   uint64
}

func newMessagesView() *MessagesView {
	return &MessagesView{
		state:    MessagesIdle,
		stable:   MessagesIdle,
		contacts: []entity.Contact{},
		patches:  make(map[string]contactPatch),
		messages: []entity.Message{},
	}
}

type ContactItem struct {
	entity.Contact
	Initials       string `json:"initials"`
	Color          string `json:"color"`
	Preview        string `json:"preview"`
	LastMessageAt  string `json:"lastMessageAt,omitempty"`
	Selected       bool   `json:"selected"`
	LocallyPatched bool   `json:"locallyPatched"`
}

type MessageItem struct {
	entity.Message
	Mine   bool   `json:"mine"`
	SentAt string `json:"sentAt"`
}

// MessagesSnapshot is the render-ready inbox. ScrollTo names the newest
// message; the browser scrolls to it whenever Revision changes.
type MessagesSnapshot struct {
	State             MessagesState `json:"state"`
	Contacts          []ContactItem `json:"contacts"`
	SelectedContactID string        `json:"selectedContactId,omitempty"`
	SelectedContact   *ContactItem  `json:"selectedContact,omitempty"`
	Messages          []MessageItem `json:"messages"`
	Revision          int           `json:"revision"`
	ScrollTo          string        `json:"scrollTo,omitempty"`
}

func (v *MessagesView) beginContacts() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.contactsGen++
	v.state = MessagesContactsLoading
	return v.contactsGen
}

func (v *MessagesView) failContacts(gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.contactsGen {
		v.state = v.stable
	}
}

// applyContacts replaces the snapshot wholesale and drops local patches. It
// returns the contact whose thread should be fetched next, and false when the
// result is stale.
func (v *MessagesView) applyContacts(gen uint64, contacts []entity.Contact) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.contactsGen {
		return "", false
	}

	v.contacts = append([]entity.Contact(nil), contacts...)
	v.patches = make(map[string]contactPatch)
	v.state = MessagesContactsLoaded
	v.stable = MessagesContactsLoaded

	if v.selectedID != "" && v.indexOf(v.selectedID) < 0 {
		v.selectedID = ""
		v.messages = []entity.Message{}
		v.revision++
	}
	if v.selectedID == "" && len(v.contacts) > 0 {
		v.selectedID = v.contacts[0].ID
	}
	return v.selectedID, true
}

type threadFetch struct {
	gen        uint64
	contactID  string
	previousID string
}

func (v *MessagesView) beginThread(contactID string) threadFetch {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.threadGen++
	f := threadFetch{gen: v.threadGen, contactID: contactID, previousID: v.selectedID}
	v.selectedID = contactID
	v.state = MessagesThreadLoading
	return f
}

// failThread puts the selection back so the list on screen still matches it.
func (v *MessagesView) failThread(f threadFetch) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if f.gen != v.threadGen {
		return
	}
	v.selectedID = f.previousID
	v.state = v.stable
}

func (v *MessagesView) applyThread(f threadFetch, messages []entity.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if f.gen != v.threadGen || v.selectedID != f.contactID {
		return
	}
	v.messages = append([]entity.Message(nil), messages...)
	v.revision++
	v.state = MessagesThreadLoaded
	v.stable = MessagesThreadLoaded
}

func (v *MessagesView) selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedID
}

func (v *MessagesView) hasContact(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.indexOf(id) >= 0
}

// applySent appends the stored message when its conversation is still open
// and patches the receiver's preview either way.
func (v *MessagesView) applySent(receiverID, content string, message entity.Message, at time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selectedID == receiverID {
		v.messages = append(v.messages, message)
		v.revision++
	}
	v.patches[receiverID] = contactPatch{lastMessage: content, lastMessageDate: at}
}

func (v *MessagesView) indexOf(id string) int {
	for i, c := range v.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Contacts returns the reconciled list: snapshot overlaid with local patches.
func (v *MessagesView) Contacts() []entity.Contact {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reconciled()
}

func (v *MessagesView) reconciled() []entity.Contact {
	out := make([]entity.Contact, len(v.contacts))
	for i, c := range v.contacts {
		if p, ok := v.patches[c.ID]; ok {
			at := p.lastMessageDate
			c.LastMessage = p.lastMessage
			c.LastMessageDate = &at
		}
		out[i] = c
	}
	return out
}

func (v *MessagesView) snapshot(me string, now time.Time, loc *time.Location) *MessagesSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := &MessagesSnapshot{
		State:             v.state,
		Contacts:          make([]ContactItem, 0, len(v.contacts)),
		SelectedContactID: v.selectedID,
		Messages:          make([]MessageItem, 0, len(v.messages)),
		Revision:          v.revision,
	}

	for _, c := range v.reconciled() {
		_, patched := v.patches[c.ID]
		item := ContactItem{
			Contact:        c,
			Initials:       utils.Initials(c.Name),
			Color:          utils.ColorFromString(c.Name),
			Preview:        utils.Truncate(c.LastMessage, previewLength),
			Selected:       c.ID == v.selectedID,
			LocallyPatched: patched,
		}
		if c.LastMessageDate != nil {
			item.LastMessageAt = utils.FormatDate(*c.LastMessageDate, now, loc)
		}
		snap.Contacts = append(snap.Contacts, item)
		if item.Selected {
			selected := item
			snap.SelectedContact = &selected
		}
	}

	for _, m := range v.messages {
		snap.Messages = append(snap.Messages, MessageItem{
			Message: m,
			Mine:    m.SenderID == me,
			SentAt:  utils.FormatDate(m.CreatedAt, now, loc),
		})
	}
	if n := len(v.messages); n > 0 {
		snap.ScrollTo = v.messages[n-1].ID
	}
	return snap
}

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	loc         *time.Location
	now         func() time.Time
}

func NewMessageUseCase(messageRepo repository.MessageRepository, loc *time.Location) *MessageUseCase {
	return &MessageUseCase{
		messageRepo: messageRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// MessageResult is a snapshot plus the notification to show, if any.
type MessageResult struct {
	Snapshot *MessagesSnapshot
	Notice   *response.Notice
}

// Mount starts the inbox from scratch: contacts, then the thread of the first
// contact.
func (uc *MessageUseCase) Mount(ctx context.Context, ws *Workspace, user *entity.User) (*MessageResult, error) {
	v := newMessagesView()
	ws.setMessagesView(v)
	return uc.load(ctx, v, user)
}

// Refresh re-fetches contacts and the open thread. Local previews are
// replaced by what the backend now says.
func (uc *MessageUseCase) Refresh(ctx context.Context, ws *Workspace, user *entity.User) (*MessageResult, error) {
	v := ws.messagesView()
	if v == nil {
		return uc.Mount(ctx, ws, user)
	}
	return uc.load(ctx, v, user)
}

func (uc *MessageUseCase) Select(ctx context.Context, ws *Workspace, user *entity.User, contactID string) (*MessageResult, error) {
	v, result, err := uc.ensure(ctx, ws, user)
	if err != nil {
		return result, err
	}

	if !v.hasContact(contactID) {
		return uc.result(v, user, nil), errors.NotFound("Contact", nil)
	}
	return uc.fetchThread(ctx, v, user, contactID)
}

type SendInput struct {
	ContactID string `json:"contactId"`
	Content   string `json:"content"`
}

// Send posts a message to the selected contact, or to ContactID when given.
// Blank content never reaches the backend.
func (uc *MessageUseCase) Send(ctx context.Context, ws *Workspace, user *entity.User, input SendInput) (*MessageResult, error) {
	if strings.TrimSpace(input.Content) == "" {
		var snap *MessagesSnapshot
		if v := ws.messagesView(); v != nil {
			snap = v.snapshot(user.ID, uc.now(), uc.loc)
		}
		return &MessageResult{Snapshot: snap}, errors.Validation(msgEmptyMessage)
	}

	v, result, err := uc.ensure(ctx, ws, user)
	if err != nil {
		return result, err
	}

	receiver := v.selected()
	if input.ContactID != "" && input.ContactID != receiver {
		if !v.hasContact(input.ContactID) {
			return uc.result(v, user, nil), errors.NotFound("Contact", nil)
		}
		if result, err := uc.fetchThread(ctx, v, user, input.ContactID); err != nil {
			return result, err
		}
		receiver = input.ContactID
	}
	if receiver == "" {
		return uc.result(v, user, nil), errors.Validation(msgNoConversation)
	}

	message, err := uc.messageRepo.Send(ctx, entity.SendMessageInput{
		ReceiverID: receiver,
		Content:    input.Content,
	})
	if err != nil {
		return uc.result(v, user, response.ErrorNotice(msgSendFailed)), err
	}

	v.applySent(receiver, input.Content, *message, uc.now())
	return uc.result(v, user, nil), nil
}

// Snapshot renders the mounted inbox without fetching anything.
func (uc *MessageUseCase) Snapshot(ws *Workspace, user *entity.User) *MessagesSnapshot {
	v := ws.messagesView()
	if v == nil {
		return nil
	}
	return v.snapshot(user.ID, uc.now(), uc.loc)
}

func (uc *MessageUseCase) ensure(ctx context.Context, ws *Workspace, user *entity.User) (*MessagesView, *MessageResult, error) {
	if v := ws.messagesView(); v != nil {
		return v, nil, nil
	}
	result, err := uc.Mount(ctx, ws, user)
	if err != nil {
		return nil, result, err
	}
	return ws.messagesView(), nil, nil
}

func (uc *MessageUseCase) load(ctx context.Context, v *MessagesView, user *entity.User) (*MessageResult, error) {
	gen := v.beginContacts()

	contacts, err := uc.messageRepo.ListContacts(ctx)
	if err != nil {
		v.failContacts(gen)
		return uc.result(v, user, response.ErrorNotice(msgContactsFailed)), err
	}

	selected, fresh := v.applyContacts(gen, contacts)
	if !fresh || selected == "" {
		return uc.result(v, user, nil), nil
	}
	return uc.fetchThread(ctx, v, user, selected)
}

func (uc *MessageUseCase) fetchThread(ctx context.Context, v *MessagesView, user *entity.User, contactID string) (*MessageResult, error) {
	f := v.beginThread(contactID)

	messages, err := uc.messageRepo.ListMessages(ctx, contactID)
	if err != nil {
		v.failThread(f)
		return uc.result(v, user, response.ErrorNotice(msgThreadFailed)), err
	}

	v.applyThread(f, messages)
	return uc.result(v, user, nil), nil
}

func (uc *MessageUseCase) result(v *MessagesView, user *entity.User, notice *response.Notice) *MessageResult {
	return &MessageResult{
		Snapshot: v.snapshot(user.ID, uc.now(), uc.loc),
		Notice:   notice,
	}
}
