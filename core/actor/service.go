package actor

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Axioms-Product/axiom-school-sub000/core"
)

var (
	// errors
	ErrNotFound       = errors.New("actor not found")
	ErrUsernameExists = errors.New("an actor with this username already exists")
	ErrBadCredentials = errors.New("invalid credentials")
	errSecretNotSet   = errors.New("credential secret not set")
)

type (
	// Directory is the external actor directory contract. Accounts are
	// persisted in the durable medium under a single key, keyed by actor id.
	Directory interface {
		GetAccount(ctx context.Context, id string) (Account, error)
		GetAccountByUsername(ctx context.Context, username string) (Account, error)
		// QueryAllAccounts returns accounts in a stable order (name, then id).
		QueryAllAccounts(ctx context.Context) ([]Account, error)
		// SaveAccount inserts or overwrites the account keyed by its actor id.
		SaveAccount(ctx context.Context, acct Account) error
		DeleteAccount(ctx context.Context, id string) error
	}

	Service struct {
		dir Directory
	}
)

func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

func (svc *Service) checkUniqueness(username string) error {
	_, err := svc.dir.GetAccountByUsername(context.Background(), username)
	switch errors.Cause(err) {
	case nil:
		return core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	case ErrNotFound:
		return nil
	}
	return err
}

// Register validates and creates a new actor account.
func (svc *Service) Register(ctx context.Context, na NewActor) (Actor, error) {
	if err := na.Validate(svc); err != nil {
		return Actor{}, err
	}

	acct := Account{
		Actor: Actor{
			ID:              uuid.New().String(),
			Name:            na.Name,
			Username:        na.Username,
			Email:           na.Email,
			Role:            na.Role,
			AssignedClass:   na.AssignedClass,
			AssignedSubject: na.AssignedSubject,
		},
	}
	if err := acct.SetSecret(na.Secret); err != nil {
		return Actor{}, errors.Wrap(err, "hashing secret")
	}
	if err := svc.dir.SaveAccount(ctx, acct); err != nil {
		return Actor{}, err
	}
	return acct.Actor, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Actor, error) {
	acct, err := svc.dir.GetAccount(ctx, id)
	if err != nil {
		return Actor{}, err
	}
	return acct.Actor, nil
}

func (svc *Service) GetByUsername(ctx context.Context, username string) (Actor, error) {
	acct, err := svc.dir.GetAccountByUsername(ctx, core.CleanString(username, true /* lower */))
	if err != nil {
		return Actor{}, err
	}
	return acct.Actor, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Actor, error) {
	accts, err := svc.dir.QueryAllAccounts(ctx)
	if err != nil {
		return nil, err
	}
	actors := make([]Actor, 0, len(accts))
	for _, acct := range accts {
		actors = append(actors, acct.Actor)
	}
	return actors, nil
}

// Authenticate checks the given credentials and returns the matching actor.
// Unknown usernames and wrong secrets fail alike.
func (svc *Service) Authenticate(ctx context.Context, username, secret string) (Actor, error) {
	acct, err := svc.dir.GetAccountByUsername(ctx, core.CleanString(username, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Actor{}, ErrBadCredentials
		}
		return Actor{}, err
	}
	if len(acct.CredentialSecret) == 0 {
		return Actor{}, errSecretNotSet
	}
	if err := acct.CheckSecret(secret); err != nil {
		return Actor{}, ErrBadCredentials
	}
	return acct.Actor, nil
}

// SetSecret overwrites the credential secret of an existing account.
func (svc *Service) SetSecret(ctx context.Context, username, secret string) error {
	acct, err := svc.dir.GetAccountByUsername(ctx, core.CleanString(username, true /* lower */))
	if err != nil {
		return err
	}
	if err := acct.SetSecret(secret); err != nil {
		return errors.Wrap(err, "hashing secret")
	}
	return svc.dir.SaveAccount(ctx, acct)
}

// StudentsOf returns the students of a class in roster order (name, then id).
// The roster is derived from the directory; there is no separate roster entity.
func (svc *Service) StudentsOf(ctx context.Context, class string) ([]Actor, error) {
	return svc.ofClass(ctx, class, RoleStudent)
}

// TeachersOf returns the teachers assigned to a class, in the same stable order.
func (svc *Service) TeachersOf(ctx context.Context, class string) ([]Actor, error) {
	return svc.ofClass(ctx, class, RoleTeacher)
}

func (svc *Service) ofClass(ctx context.Context, class string, role Role) ([]Actor, error) {
	all, err := svc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	actors := make([]Actor, 0, len(all))
	for _, act := range all {
		if act.Role == role && act.AssignedClass == class {
			actors = append(actors, act)
		}
	}
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].Name != actors[j].Name {
			return actors[i].Name < actors[j].Name
		}
		return actors[i].ID < actors[j].ID
	})
	return actors, nil
}
