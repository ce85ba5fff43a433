// Утилита оператора: создаёт учётную запись (эндпоинта регистрации в API нет).
//
//	go run ./services/adduser -username ivanov -password secret -first Иван -last Иванов -student -grade 11A
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rirush/RTest/internal/config"
	"github.com/Rirush/RTest/internal/logger"
	"github.com/Rirush/RTest/internal/model"
	"github.com/Rirush/RTest/internal/password"
	"github.com/Rirush/RTest/internal/repository"
	"github.com/Rirush/RTest/internal/startup"
)

func main() {
	logger.SetPrefix("adduser")
	username := flag.String("username", "", "username (required)")
	pass := flag.String("password", "", "password (required)")
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	student := flag.Bool("student", false, "account is a student (default: teacher)")
	grade := flag.String("grade", "", "class designator for students, e.g. 11A")
	cost := flag.Int("cost", 0, "bcrypt cost (0 = default)")
	flag.Parse()

	if *username == "" || *pass == "" {
		fmt.Fprintln(os.Stderr, "usage: adduser -username <name> -password <pass> [-first ...] [-last ...] [-student] [-grade 11A]")
		os.Exit(2)
	}
	if *grade != "" && !*student {
		fmt.Fprintln(os.Stderr, "adduser: -grade задаётся только вместе с -student")
		os.Exit(2)
	}

	cfg := config.Load()
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		logger.Errorf("parse db config: %v", err)
		os.Exit(1)
	}
	pool := startup.ConnectDBWithRetry(poolCfg, 15*time.Second)
	defer pool.Close()

	hash, err := password.Hash(*pass, *cost)
	if err != nil {
		logger.Errorf("hash password: %v", err)
		os.Exit(1)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     *username,
		PasswordHash: hash,
		FirstName:    *firstName,
		LastName:     *lastName,
		Student:      *student,
		Grade:        *grade,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo := repository.NewUserRepository(pool)
	if _, err := repo.GetByUsername(ctx, *username); err == nil {
		logger.Errorf("пользователь %q уже существует", *username)
		os.Exit(1)
	}
	if err := repo.Create(ctx, u); err != nil {
		logger.Errorf("create user: %v", err)
		os.Exit(1)
	}
	fmt.Printf("created user %s id=%s\n", u.Username, u.ID)
}
