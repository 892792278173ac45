package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RyShoe8/fantasyfootball/controller"
	"github.com/RyShoe8/fantasyfootball/db"
	"github.com/RyShoe8/fantasyfootball/localcache"
	"github.com/RyShoe8/fantasyfootball/sleeper"
	"github.com/RyShoe8/fantasyfootball/web"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatal().Err(err).Msg("error parsing port number")
		}
	}

	cacheDir := os.Getenv("CACHE_DIR")
	if cacheDir == "" {
		cacheDir = ".cache"
	}

	clock := clock.New()
	store, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to DB")
	}
	defer store.Close()

	local, err := localcache.New(cacheDir, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local cache")
	}
	defer local.Close()

	sleeperClient, err := sleeper.New()
	if err != nil {
		log.Fatal().Err(err).Msg("error creating sleeper client")
	}
	if url := os.Getenv("SLEEPER_URL"); url != "" {
		sleeperClient = sleeper.NewForTest(url)
	}

	ctrl, err := controller.New(clock, sleeperClient, store, local)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating a new controller")
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that refreshes the player catalog from sleeper every 24-hours
	wg.Add(1)
	go ctrl.RunPeriodicCatalogUpdates(24*time.Hour, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Info().Msg("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
