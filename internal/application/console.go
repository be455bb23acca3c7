package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/internal/domain/repository"
)

// Backend is the set of collections the console screens read and write.
type Backend struct {
	Countries repository.Collection[entity.Country]
	States    repository.Collection[entity.State]
	Districts repository.Collection[entity.District]
	Languages repository.Collection[entity.Language]
	Roles     repository.Collection[entity.Role]
	UserRoles repository.Collection[entity.UserRole]
	Users     repository.Lister[entity.User]
	Employees repository.Collection[entity.Employee]
}

// Console holds one controller per screen. Each screen keeps its own list
// and reference lists; nothing is shared between them.
type Console struct {
	Countries *Controller[entity.Country]
	States    *Controller[entity.State]
	Districts *Controller[entity.District]
	Languages *Controller[entity.Language]
	Roles     *Controller[entity.Role]
	UserRoles *Controller[entity.UserRole]
	Employees *Controller[entity.Employee]

	logger *logrus.Logger
}

func NewConsole(b Backend, validate StructValidator, notices Notifier, logger *logrus.Logger) *Console {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Console{
		Countries: NewController(CountryScreen(b.Countries), validate, notices, logger),
		States:    NewController(StateScreen(b.States, b.Countries), validate, notices, logger),
		Districts: NewController(DistrictScreen(b.Districts, b.States), validate, notices, logger),
		Languages: NewController(LanguageScreen(b.Languages), validate, notices, logger),
		Roles:     NewController(RoleScreen(b.Roles), validate, notices, logger),
		UserRoles: NewController(UserRoleScreen(b.UserRoles, b.Users, b.Roles), validate, notices, logger),
		Employees: NewController(EmployeeScreen(b.Employees, EmployeeReferences{
			Countries: b.Countries,
			States:    b.States,
			Districts: b.Districts,
			Languages: b.Languages,
		}), validate, notices, logger),
		logger: logger,
	}
}

type mountable interface {
	Name() string
	Mount(ctx context.Context) error
	Size() int
}

func (c *Console) screens() []mountable {
	return []mountable{c.Countries, c.States, c.Districts, c.Languages, c.Roles, c.UserRoles, c.Employees}
}

// MountAll mounts every screen in parallel. A screen that fails to load
// stays empty and is logged; the first failure is returned.
func (c *Console) MountAll(ctx context.Context) error {
	var g errgroup.Group
	for _, s := range c.screens() {
		g.Go(func() error {
			if err := s.Mount(ctx); err != nil {
				c.logger.WithError(err).WithField("screen", s.Name()).Warn("mount failed")
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Sizes reports how many records each screen has loaded.
func (c *Console) Sizes() map[string]int {
	out := map[string]int{}
	for _, s := range c.screens() {
		out[s.Name()] = s.Size()
	}
	return out
}
