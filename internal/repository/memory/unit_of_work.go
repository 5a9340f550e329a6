package memory

import (
	"context"
	"fmt"

	"ai-note-assistant/internal/repository/contract"
	"ai-note-assistant/internal/repository/unitofwork"
)

// UnitOfWork hands out the shared in-memory repositories. Writes apply
// immediately, so Rollback cannot undo them; it only ends the unit.
type UnitOfWork struct {
	notes  *NoteRepository
	active bool
}

func (u *UnitOfWork) Begin(context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *UnitOfWork) NoteRepository() contract.NoteRepository {
	return u.notes
}

type RepositoryFactory struct {
	notes *NoteRepository
}

func NewRepositoryFactory(notes *NoteRepository) unitofwork.RepositoryFactory {
	if notes == nil {
		notes = NewNoteRepository()
	}
	return &RepositoryFactory{notes: notes}
}

func (f *RepositoryFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{notes: f.notes}
}
