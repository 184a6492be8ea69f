package service

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/listview"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/validation"
)

type UserRow struct {
	domain.User
	RoleName string `json:"rol"`
}

type UserView struct {
	Users      []UserRow         `json:"usuarios"`
	Roles      []domain.Role     `json:"roles"`
	Search     string            `json:"search"`
	Pagination listview.PageInfo `json:"pagination"`
}

// UserScreen is the user admin list plus its create/edit dialog.
type UserScreen struct {
	svc       *Service
	notifier  notify.Notifier
	confirmer notify.Confirmer

	users  []domain.User
	roles  []domain.Role
	search string
	page   int
}

func (s *Service) Users(n notify.Notifier, c notify.Confirmer) *UserScreen {
	if n == nil {
		n = notify.NewRecorder()
	}
	return &UserScreen{svc: s, notifier: n, confirmer: c, page: 1}
}

// Mount loads users and roles. On failure the previous copies are kept.
func (u *UserScreen) Mount(ctx context.Context) error {
	var (
		users []domain.User
		roles []domain.Role
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = u.svc.backend.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = u.svc.backend.ListRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		notify.Error(ctx, u.notifier, "Error al cargar los usuarios.", "")
		return backendFailure(ctx, "list users", err)
	}
	u.users, u.roles = users, roles
	return nil
}

func (u *UserScreen) refresh(ctx context.Context) {
	users, err := u.svc.backend.ListUsers(ctx)
	if err != nil {
		_ = backendFailure(ctx, "refresh users", err)
		return
	}
	u.users = users
}

func (u *UserScreen) SetSearch(term string) {
	u.search = term
}

func (u *UserScreen) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	u.page = page
}

// Save creates the user, or updates it when editing. Validation runs first
// and a rejected form never reaches the backend.
func (u *UserScreen) Save(ctx context.Context, user domain.User, editing bool) error {
	if errs := validation.ValidateUser(user, !editing); !errs.Valid() {
		notify.Error(ctx, u.notifier, validation.FormSummary, "")
		return &ValidationError{Fields: errs}
	}
	if editing && user.ID == "" {
		notify.Error(ctx, u.notifier, validation.FormSummary, "")
		return &ValidationError{Fields: validation.Errors{"id_usuario": "Debe indicar el usuario a editar."}}
	}

	var err error
	if editing {
		err = u.svc.backend.UpdateUser(ctx, user.ID, user)
	} else {
		user.ID = ""
		err = u.svc.backend.CreateUser(ctx, user)
	}
	if err != nil {
		notify.Error(ctx, u.notifier, "Error al guardar usuario. Por favor, inténtalo de nuevo.", "")
		return backendFailure(ctx, "save user", err)
	}

	u.refresh(ctx)
	if editing {
		u.svc.logAudit(ctx, "update", "usuario", user.ID, user.Email)
		notify.Success(ctx, u.notifier, "¡Actualizado! El usuario ha sido actualizado correctamente.", "")
	} else {
		u.svc.logAudit(ctx, "create", "usuario", "", user.Email)
		notify.Success(ctx, u.notifier, "¡Creado! El usuario ha sido creado correctamente.", "")
	}
	return nil
}

// Delete asks for confirmation first; a declined prompt issues no backend
// call and leaves the list as it was.
func (u *UserScreen) Delete(ctx context.Context, id domain.ID) error {
	idx := slices.IndexFunc(u.users, func(x domain.User) bool { return x.ID == id })
	if idx < 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	user := u.users[idx]

	confirmed := ask(ctx, u.confirmer, notify.Prompt{
		Title:         "¿Estás seguro?",
		Text:          fmt.Sprintf("¿Estás seguro de que deseas eliminar al usuario %s?", user.Name),
		ConfirmButton: "Sí, eliminar",
		CancelButton:  "Cancelar",
	})
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := u.svc.backend.DeleteUser(ctx, id); err != nil {
		notify.Error(ctx, u.notifier, "Error", "Hubo un problema al eliminar el usuario.")
		return backendFailure(ctx, "delete user", err)
	}
	u.refresh(ctx)
	u.svc.logAudit(ctx, "delete", "usuario", id, user.Email)
	notify.Success(ctx, u.notifier, "¡Eliminado!", "El usuario ha sido eliminado.")
	return nil
}

func (u *UserScreen) View() UserView {
	roleNames := firstNames(u.roles, func(x domain.Role) (domain.ID, string) { return x.ID, x.Name })

	filtered := listview.Filter(u.users, u.search, func(x domain.User) string { return x.Name })
	pageItems, info := listview.Paginate(filtered, u.page, PageSize)

	rows := make([]UserRow, 0, len(pageItems))
	for _, x := range pageItems {
		x.Password = ""
		rows = append(rows, UserRow{User: x, RoleName: lookup(roleNames, x.RoleID)})
	}
	return UserView{
		Users:      rows,
		Roles:      slices.Clone(u.roles),
		Search:     u.search,
		Pagination: info,
	}
}
