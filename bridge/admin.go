package bridge

import (
	"fmt"

	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
)

// Governance decides who may change bridge policy.
type Governance interface {
	Admin(s store.KVStore) (string, error)
	AssertAdmin(s store.KVStore, caller string) error
	SetAdmin(s store.KVStore, admin string) error
}

// StoredAdmin keeps a single admin identity in state.
type StoredAdmin struct{}

func (StoredAdmin) Admin(s store.KVStore) (string, error) {
	var admin string
	_, err := store.GetJSON(s, keyAdmin, &admin)
	return admin, err
}

func (g StoredAdmin) AssertAdmin(s store.KVStore, caller string) error {
	admin, err := g.Admin(s)
	if err != nil {
		return err
	}
	if admin == "" || admin != caller {
		return fmt.Errorf("%w: %s", types.ErrUnauthorized, caller)
	}
	return nil
}

func (StoredAdmin) SetAdmin(s store.KVStore, admin string) error {
	return store.SetJSON(s, keyAdmin, admin)
}

// ExecuteUpdateAdmin hands governance to a new identity. Only the current admin may call it.
func (b *Bridge) ExecuteUpdateAdmin(s store.KVStore, info MessageInfo, admin string) (*Response, error) {
	if err := nonpayable(info); err != nil {
		return nil, err
	}
	if err := b.gov.AssertAdmin(s, info.Sender); err != nil {
		return nil, err
	}
	addr, err := b.api.AddrValidate(admin)
	if err != nil {
		return nil, err
	}
	prev, err := b.gov.Admin(s)
	if err != nil {
		return nil, err
	}
	if err := b.gov.SetAdmin(s, addr); err != nil {
		return nil, err
	}
	return NewResponse().
		AddAttribute("action", "update_admin").
		AddAttribute("admin", prev).
		AddAttribute("new_admin", addr), nil
}
