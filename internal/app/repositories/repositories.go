package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	ScheduleRepository *ScheduleRepository
	SessionRepository  *SessionRepository
	UserRepository     *UserRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ScheduleRepository: NewScheduleRepository(db),
		SessionRepository:  NewSessionRepository(db),
		UserRepository:     NewUserRepository(db),
	}
}
