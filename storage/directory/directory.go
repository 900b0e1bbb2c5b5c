// Package actordir implements the actor.Directory contract over the durable
// key-value medium: all accounts live under one key as a JSON object keyed
// by actor id. The map is re-read on every operation rather than cached.
package actordir

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
	"github.com/Axioms-Product/axiom-school-sub000/core/actor"
)

const storageKey = "actors"

type kvDirectory struct {
	kv core.KeyValueStore
	mu sync.Mutex // serializes read-modify-write cycles
}

var _ actor.Directory = (*kvDirectory)(nil)

func New(kv core.KeyValueStore) actor.Directory {
	return &kvDirectory{kv: kv}
}

// load parses the stored account map; absent or unparsable reads as empty.
func (d *kvDirectory) load(ctx context.Context) map[string]actor.Account {
	accounts := make(map[string]actor.Account)
	blob, err := d.kv.Get(ctx, storageKey)
	if err != nil {
		return accounts
	}
	if err := json.Unmarshal([]byte(blob), &accounts); err != nil {
		return make(map[string]actor.Account)
	}
	return accounts
}

func (d *kvDirectory) save(ctx context.Context, accounts map[string]actor.Account) error {
	blob, err := json.Marshal(accounts)
	if err != nil {
		return errors.Wrap(err, "serializing actor directory")
	}
	return errors.Wrap(d.kv.Set(ctx, storageKey, string(blob)), "flushing actor directory")
}

func (d *kvDirectory) GetAccount(ctx context.Context, id string) (actor.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if acct, ok := d.load(ctx)[id]; ok {
		return acct, nil
	}
	return actor.Account{}, actor.ErrNotFound
}

func (d *kvDirectory) GetAccountByUsername(ctx context.Context, username string) (actor.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, acct := range d.load(ctx) {
		if acct.Actor.Username == username {
			return acct, nil
		}
	}
	return actor.Account{}, actor.ErrNotFound
}

func (d *kvDirectory) QueryAllAccounts(ctx context.Context) ([]actor.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	accounts := d.load(ctx)
	all := make([]actor.Account, 0, len(accounts))
	for _, acct := range accounts {
		all = append(all, acct)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Actor.Name != all[j].Actor.Name {
			return all[i].Actor.Name < all[j].Actor.Name
		}
		return all[i].Actor.ID < all[j].Actor.ID
	})
	return all, nil
}

func (d *kvDirectory) SaveAccount(ctx context.Context, acct actor.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	accounts := d.load(ctx)
	accounts[acct.Actor.ID] = acct
	return d.save(ctx, accounts)
}

func (d *kvDirectory) DeleteAccount(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	accounts := d.load(ctx)
	if _, ok := accounts[id]; !ok {
		return nil
	}
	delete(accounts, id)
	return d.save(ctx, accounts)
}
