package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fnbapp/backend/app/cmd"
	"github.com/fnbapp/backend/app/configs"
	"github.com/fnbapp/backend/app/routes"
)

func main() {
	env := configs.LoadEnv()

	level, err := logrus.ParseLevel(env.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if env.AppEnv == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if len(os.Args) > 1 {
		cmd.RunCli(env)
		return
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		logrus.Fatalf("database connection failed: %v", err)
	}
	logrus.Info("✅ Database connected")

	router, err := routes.NewRouter(env, db)
	if err != nil {
		logrus.Fatalf("router setup failed: %v", err)
	}

	addr := ":" + env.Port
	if env.Port == "" {
		addr = ":8080"
	}

	server := http.Server{
		Addr:    addr,
		Handler: router,
	}

	logrus.Infof("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
