// presenced runs the realtime presence hub: websocket rooms per
// conversation, with offline events queued in Redis.
package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/roudra323/Chitchat-DApp-Project/internal/presence"
)

func main() {
	listen := flag.String("listen", ":8081", "listen address")
	redisAddr := flag.String("redis", "localhost:6379", "redis address for the offline event queue")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(*level); err == nil {
		logger.SetLevel(lvl)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: *redisAddr})
	hub := presence.NewHub(context.Background(), redisClient, logger)
	defer hub.Close()

	logger.Infof("presence hub listening on %s", *listen)
	if err := http.ListenAndServe(*listen, hub.Router()); err != nil {
		logger.Fatalf("Error starting server: %v", err)
	}
}
