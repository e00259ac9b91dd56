package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/invite"
)

type InviteRepository struct {
	mu    sync.RWMutex
	items map[string]invite.Invite
	order []string
}

func NewInviteRepository() *InviteRepository {
	return &InviteRepository{items: make(map[string]invite.Invite)}
}

func (r *InviteRepository) Create(_ context.Context, inv invite.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[inv.ID]; exists {
		return fmt.Errorf("invite %s already exists", inv.ID)
	}
	r.items[inv.ID] = inv
	r.order = append(r.order, inv.ID)

	return nil
}

func (r *InviteRepository) GetByID(_ context.Context, inviteID string) (invite.Invite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.items[inviteID]
	return inv, ok, nil
}

func (r *InviteRepository) GetByToken(_ context.Context, token string) (invite.Invite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if inv, ok := r.items[id]; ok && inv.Token == token {
			return inv, true, nil
		}
	}

	return invite.Invite{}, false, nil
}

func (r *InviteRepository) ListByLeague(_ context.Context, leagueID string) ([]invite.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invite.Invite, 0)
	for _, id := range r.order {
		if inv, ok := r.items[id]; ok && inv.LeagueID == leagueID {
			out = append(out, inv)
		}
	}

	return out, nil
}

func (r *InviteRepository) ListByInvitee(_ context.Context, inviteeID string) ([]invite.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invite.Invite, 0)
	for _, id := range r.order {
		if inv, ok := r.items[id]; ok && inv.Type == invite.TypeDirect && inv.InviteeID == inviteeID {
			out = append(out, inv)
		}
	}

	return out, nil
}

func (r *InviteRepository) UpdateStatus(_ context.Context, inviteID string, status invite.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.items[inviteID]
	if !ok {
		return fmt.Errorf("invite %s not found", inviteID)
	}
	inv.Status = status
	r.items[inviteID] = inv

	return nil
}

func (r *InviteRepository) IncrementUses(_ context.Context, inviteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.items[inviteID]
	if !ok {
		return fmt.Errorf("invite %s not found", inviteID)
	}
	inv.Uses++
	r.items[inviteID] = inv

	return nil
}

func (r *InviteRepository) Delete(_ context.Context, inviteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[inviteID]; !ok {
		return fmt.Errorf("invite %s not found", inviteID)
	}
	delete(r.items, inviteID)
	for i, id := range r.order {
		if id == inviteID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *InviteRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := r.order[:0]
	for _, id := range r.order {
		if inv, ok := r.items[id]; ok && inv.LeagueID == leagueID {
			delete(r.items, id)
			continue
		}
		remaining = append(remaining, id)
	}
	r.order = remaining

	return nil
}
