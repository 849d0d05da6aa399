package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

var schema = sqlitemigration.Schema{
	Migrations: []string{
		`CREATE TABLE IF NOT EXISTS modules (
			slug TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			namespace TEXT NOT NULL DEFAULT '',
			enabled BOOLEAN NOT NULL,
			navigation BOOLEAN NOT NULL,
			root_menu TEXT NOT NULL DEFAULT '',
			root_menu_icon TEXT NOT NULL DEFAULT '',
			access TEXT NOT NULL DEFAULT '',
			sections TEXT NOT NULL DEFAULT '[]', -- JSON encoded section declarations
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	},
}

const moduleAttributes = "slug, name, title, icon, namespace, enabled, navigation, root_menu, root_menu_icon, access, sections"

// Registry stores modules in a SQLite database.
type Registry struct {
	pool *sqlitemigration.Pool
}

// Modules implements navigation.Registry.
func (r *Registry) Modules(ctx context.Context) ([]navigation.Module, error) {
	modules := make([]navigation.Module, 0)

	err := r.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM modules ORDER BY slug", moduleAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				m, err := bindModule(stmt)
				if err != nil {
					return errors.WithStack(err)
				}

				modules = append(modules, m)

				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return modules, nil
}

// Module implements navigation.Registry.
func (r *Registry) Module(ctx context.Context, slug string) (navigation.Module, error) {
	var module *navigation.Module

	err := r.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM modules WHERE slug = ? LIMIT 1", moduleAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{slug},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				m, err := bindModule(stmt)
				if err != nil {
					return errors.WithStack(err)
				}

				module = &m

				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return navigation.Module{}, errors.WithStack(err)
	}

	if module == nil {
		return navigation.Module{}, errors.Wrapf(registry.ErrNotFound, "could not find module '%s'", slug)
	}

	return *module, nil
}

// Save implements registry.Writer.
func (r *Registry) Save(ctx context.Context, m navigation.Module) error {
	sections, err := json.Marshal(m.Sections)
	if err != nil {
		return errors.Wrapf(err, "could not encode sections of module '%s'", m.Slug)
	}

	if m.Sections == nil {
		sections = []byte("[]")
	}

	now := time.Now().UTC().Unix()

	err = r.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `
			INSERT INTO modules (slug, name, title, icon, namespace, enabled, navigation, root_menu, root_menu_icon, access, sections, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (slug) DO UPDATE SET
				name = excluded.name,
				title = excluded.title,
				icon = excluded.icon,
				namespace = excluded.namespace,
				enabled = excluded.enabled,
				navigation = excluded.navigation,
				root_menu = excluded.root_menu,
				root_menu_icon = excluded.root_menu_icon,
				access = excluded.access,
				sections = excluded.sections,
				updated_at = excluded.updated_at
		`
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				m.Slug, m.Name, m.Title, m.Icon, m.Namespace,
				m.Enabled, m.Navigation,
				m.RootMenu, m.RootMenuIcon, m.Access,
				string(sections),
				now, now,
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Delete implements registry.Writer.
func (r *Registry) Delete(ctx context.Context, slug string) error {
	err := r.Tx(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, "DELETE FROM modules WHERE slug = ?", &sqlitex.ExecOptions{
			Args: []any{slug},
		}))
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (r *Registry) HealthCheck(ctx context.Context) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer r.pool.Put(conn)

	if err := r.pool.CheckHealth(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (r *Registry) Do(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer r.pool.Put(conn)

	if err := fn(conn); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (r *Registry) Tx(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	return errors.WithStack(r.Do(ctx, func(conn *sqlite.Conn) (err error) {
		defer sqlitex.Save(conn)(&err)
		err = fn(conn)
		return errors.WithStack(err)
	}))
}

func (r *Registry) Close() error {
	return errors.WithStack(r.pool.Close())
}

func NewRegistry(pool *sqlitemigration.Pool) *Registry {
	return &Registry{
		pool: pool,
	}
}

var (
	_ navigation.Registry = &Registry{}
	_ registry.Writer     = &Registry{}
)

func bindModule(stmt *sqlite.Stmt) (navigation.Module, error) {
	m := navigation.Module{
		Slug:         stmt.ColumnText(0),
		Name:         stmt.ColumnText(1),
		Title:        stmt.ColumnText(2),
		Icon:         stmt.ColumnText(3),
		Namespace:    stmt.ColumnText(4),
		Enabled:      stmt.ColumnBool(5),
		Navigation:   stmt.ColumnBool(6),
		RootMenu:     stmt.ColumnText(7),
		RootMenuIcon: stmt.ColumnText(8),
		Access:       stmt.ColumnText(9),
	}

	if err := json.Unmarshal([]byte(stmt.ColumnText(10)), &m.Sections); err != nil {
		return navigation.Module{}, errors.Wrapf(err, "could not decode sections of module '%s'", m.Slug)
	}

	return m, nil
}
