package usecase

import (
	"sync"
	"time"
)

// Workspace holds the page view models of one browser session. A page that
// was never mounted has a nil view.
type Workspace struct {
	mu       sync.Mutex
	messages *MessagesView
	orders   *OrdersView
	products *ProductsView
	profile  *ProfileView
	lastUsed time.Time
}

func (w *Workspace) messagesView() *MessagesView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.messages
}

func (w *Workspace) setMessagesView(v *MessagesView) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = v
}

func (w *Workspace) ordersView() *OrdersView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.orders
}

func (w *Workspace) setOrdersView(v *OrdersView) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.orders = v
}

func (w *Workspace) productsView() *ProductsView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.products
}

func (w *Workspace) setProductsView(v *ProductsView) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.products = v
}

func (w *Workspace) profileView() *ProfileView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}

func (w *Workspace) setProfileView(v *ProfileView) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profile = v
}

// WorkspaceRegistry maps session ids to their workspace. Workspaces live in
// process memory only; a restart simply remounts every page on next visit.
type WorkspaceRegistry struct {
	mu     sync.Mutex
	spaces map[string]*Workspace
	idle   time.Duration
	now    func() time.Time
}

func NewWorkspaceRegistry(idle time.Duration) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		spaces: make(map[string]*Workspace),
		idle:   idle,
		now:    time.Now,
	}
}

// Get returns the workspace of sessionID, creating it on first use.
func (r *WorkspaceRegistry) Get(sessionID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.spaces[sessionID]
	if !ok {
		ws = &Workspace{}
		r.spaces[sessionID] = ws
	}
	ws.lastUsed = r.now()
	return ws
}

func (r *WorkspaceRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spaces, sessionID)
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

// Sweep drops the workspaces unused for longer than the idle period and
// returns how many went away.
func (r *WorkspaceRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	dropped := 0
	for id, ws := range r.spaces {
		if now.Sub(ws.lastUsed) > r.idle {
			delete(r.spaces, id)
			dropped++
		}
	}
	return dropped
}

func (r *WorkspaceRegistry) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
