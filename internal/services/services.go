package services

import (
	"context"
	"log"

	"github.com/curaious/taskhive/internal/config"
	"github.com/curaious/taskhive/internal/db"
	"github.com/curaious/taskhive/internal/services/task"
	"github.com/curaious/taskhive/internal/services/user"
)

type Services struct {
	User *user.UserService
	Task *task.TaskService
}

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	userSvc := user.NewUserService(user.NewUserRepo(dbconn))

	svc := &Services{
		User: userSvc,
		Task: task.NewTaskService(task.NewTaskRepo(dbconn), userSvc),
	}

	// The role rows back every registration; the process cannot serve
	// without them.
	if err := svc.User.EnsureRoles(context.Background()); err != nil {
		log.Fatalf("failed to ensure roles: %v", err)
	}

	return svc
}
