package usecase

import (
	"context"
	"io"
	"net/http"
	"sync"

	"agriconnect/internal/domain/entity"
	"agriconnect/pkg/errors"
)

var errBackendDown = errors.Upstream(http.StatusInternalServerError, "", nil)

type fakeUserRepo struct {
	user      *entity.User
	err       error
	logoutErr error
	calls     map[string]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{calls: make(map[string]int)}
}

func (f *fakeUserRepo) Me(ctx context.Context) (*entity.User, error) {
	f.calls["me"]++
	return f.user, f.err
}

func (f *fakeUserRepo) Login(ctx context.Context, email, password string) (*entity.User, error) {
	f.calls["login"]++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) Register(ctx context.Context, data entity.RegisterData) (*entity.User, error) {
	f.calls["register"]++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) Logout(ctx context.Context) error {
	f.calls["logout"]++
	return f.logoutErr
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, data entity.UpdateProfileData) (*entity.User, error) {
	f.calls["update"]++
	if f.err != nil {
		return nil, f.err
	}
	u := *f.user
	u.Name = data.Name
	return &u, nil
}

type fakeSessionRepo struct {
	deleted []string
}

func (f *fakeSessionRepo) Get(ctx context.Context, id string) (*entity.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, s *entity.Session) error {
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMessageRepo struct {
	mu          sync.Mutex
	contacts    []entity.Contact
	threads     map[string][]entity.Message
	contactsErr error
	threadErr   error
	sendErr     error
	sent        []entity.SendMessageInput
	calls       map[string]int
	// gate, when set for a contact id, blocks ListMessages until closed.
	gate    map[string]chan struct{}
	started chan string
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		threads: make(map[string][]entity.Message),
		calls:   make(map[string]int),
		gate:    make(map[string]chan struct{}),
	}
}

func (f *fakeMessageRepo) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeMessageRepo) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["contacts"]++
	if f.contactsErr != nil {
		return nil, f.contactsErr
	}
	return append([]entity.Contact(nil), f.contacts...), nil
}

func (f *fakeMessageRepo) ListMessages(ctx context.Context, contactID string) ([]entity.Message, error) {
	f.mu.Lock()
	f.calls["thread"]++
	gate := f.gate[contactID]
	started := f.started
	f.mu.Unlock()

	if gate != nil {
		if started != nil {
			started <- contactID
		}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.threadErr != nil {
		return nil, f.threadErr
	}
	return append([]entity.Message(nil), f.threads[contactID]...), nil
}

func (f *fakeMessageRepo) Send(ctx context.Context, input entity.SendMessageInput) (*entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["send"]++
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, input)
	return &entity.Message{
		ID:         "sent-" + input.ReceiverID,
		Content:    input.Content,
		SenderID:   "me",
		ReceiverID: input.ReceiverID,
	}, nil
}

type fakeOrderRepo struct {
	orders    []entity.Order
	listErr   error
	updateErr error
	updates   int
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]entity.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Order(nil), f.orders...), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			return &o, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

type fakeProductRepo struct {
	products  []entity.Product
	listErr   error
	deleteErr error
	deletes   []string
}

func (f *fakeProductRepo) ListMine(ctx context.Context) ([]entity.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Product(nil), f.products...), nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

type fakeProfileRepo struct {
	saved []entity.Profile
	err   error
}

func (f *fakeProfileRepo) Save(ctx context.Context, p entity.Profile) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, p)
	return nil
}

type fakeUploader struct {
	url  string
	err  error
	body string
}

func (f *fakeUploader) UploadProfilePhoto(ctx context.Context, filename, contentType string, file io.Reader) (string, error) {
	data, _ := io.ReadAll(file)
	f.body = string(data)
	return f.url, f.err
}

var (
	seller = &entity.User{ID: "seller-1", Name: "Aya Kouassi", Email: "aya@example.ci", Role: entity.RoleSeller}
	buyer  = &entity.User{ID: "buyer-1", Name: "Koffi Yao", Email: "koffi@example.ci", Role: entity.RoleBuyer}
)
