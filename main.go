package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/api/handlers"
	"github.com/pickupsports/game-chat-api/api/scheduler"
	"github.com/pickupsports/game-chat-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database, redis and router
		log.Fatal(err)
	}

	s := scheduler.NewScheduler(a.Messages(), a.Locks(), a.Config.RetentionDays)
	s.Start()
	defer s.Stop()

	zap.S().Infow("game-chat-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
		"clusterFanout", a.Config.ClusterFanout,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
