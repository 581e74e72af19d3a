package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"teamboard/board"
	"teamboard/domain"
	"teamboard/realtime"
	"teamboard/rest"
	"teamboard/session"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}
	apiURL := os.Getenv("API_URL")
	token := os.Getenv("API_TOKEN")
	if apiURL == "" || token == "" {
		log.Fatal("missing API config")
	}
	redisConn := os.Getenv("REDIS_CONNECTION_STRING")
	if redisConn == "" {
		log.Fatal("missing redis config")
	}
	redisOpts, err := redis.ParseURL(redisConn)
	if err != nil {
		redisOpts = &redis.Options{Addr: redisConn}
	}
	rc := redis.NewClient(redisOpts)

	tokenFn := func() string { return token }
	client := rest.New(apiURL, tokenFn)

	ctx := context.Background()
	user, err := client.Me(ctx)
	if err != nil {
		log.Fatalf("resolve user: %v", err)
	}

	var api session.Backend = client
	if snap, err := strconv.ParseBool(os.Getenv("SNAPSHOT_CACHE")); err == nil && snap {
		ttl := time.Hour
		if v := os.Getenv("SNAPSHOT_CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid SNAPSHOT_CACHE_TTL: %v", err)
			}
			ttl = d
		}
		api = rest.NewCache(client, rc, ttl, user.ID)
	}

	sess := session.New(api, realtime.New(rc), tokenFn)
	if err := sess.Start(ctx, user); err != nil {
		log.Fatalf("start session: %v", err)
	}
	defer sess.Stop()

	projectID := os.Getenv("PROJECT_ID")
	if err := sess.Tasks.Fetch(ctx, projectID); err != nil {
		if sess.HandleAuthError(err) {
			log.Fatal("session expired")
		}
		log.Fatalf("fetch tasks: %v", err)
	}
	if err := sess.Notifications.Fetch(ctx); err != nil {
		log.Warnf("fetch notifications: %v", err)
	}

	printBoard(sess, projectID)

	changes, stopWatch := sess.Tasks.Watch()
	defer stopWatch()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case <-sig:
			return
		case <-changes:
			printBoard(sess, projectID)
		}
	}
}

func printBoard(sess *session.Session, projectID string) {
	tasks := sess.Tasks.Snapshot()
	for _, status := range []domain.Status{domain.StatusTodo, domain.StatusInProgress, domain.StatusDone} {
		col := board.Column(tasks, status, projectID, "")
		fmt.Printf("%s (%d)\n", status, len(col))
		for _, t := range col {
			assignee := "unassigned"
			if t.Assignee != nil {
				assignee = t.Assignee.Name
				if assignee == "" {
					assignee = t.Assignee.ID
				}
			}
			fmt.Printf("  [%s] %s  %s\n", t.Priority, t.Title, assignee)
		}
	}
	if unread := sess.Notifications.Unread(); unread > 0 {
		fmt.Printf("unread notifications: %d\n", unread)
	}
	if msg := sess.Tasks.Err(); msg != "" {
		fmt.Printf("last error: %s\n", msg)
	}
}
