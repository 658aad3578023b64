package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cw20ics20bridge/bridge"
	"cw20ics20bridge/config"
	"cw20ics20bridge/host"
	"cw20ics20bridge/redis"
	"cw20ics20bridge/relayer"
	"cw20ics20bridge/store"
	"cw20ics20bridge/types"
	"cw20ics20bridge/workers"
	"cw20ics20bridge/workers/handlers"
)

func newLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func newState() (store.Committer, error) {
	switch config.Config.Server.Storage {
	case "memory":
		zap.L().Warn("using in-memory state, everything is lost on restart")
		return store.NewMemory(), nil
	case "redis":
		s := redis.New(config.Config.Server.RedisHost, config.Config.Server.RedisPort,
			config.Config.Server.RedisDB, config.Config.Server.RedisPassword, config.Config.Server.RedisPrefix)
		if err := s.Ping(); err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage %q", config.Config.Server.Storage)
}

// channelKnown reports whether id is registered. Only a missing channel
// counts as unknown, storage errors are returned.
func channelKnown(rt *host.Runtime, b *bridge.Bridge, id string) (bool, error) {
	var known bool
	err := rt.Query(func(s store.KVStore) error {
		_, err := b.QueryChannel(s, id)
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		known = true
		return nil
	})
	return known, err
}

// bootstrap instantiates the bridge on first start and registers the
// channels listed in config that are not known yet.
func bootstrap(rt *host.Runtime, b *bridge.Bridge) error {
	var done bool
	if err := rt.Query(func(s store.KVStore) (err error) {
		done, err = bridge.Instantiated(s)
		return err
	}); err != nil {
		return err
	}

	if !done {
		msg := bridge.InitMsg{
			DefaultTimeout:  config.Config.Bridge.DefaultTimeout,
			DefaultGasLimit: config.Config.Bridge.DefaultGasLimit,
			GovContract:     config.Config.Bridge.GovContract,
		}
		for _, a := range config.Config.Bridge.Allowlist {
			msg.Allowlist = append(msg.Allowlist, bridge.AllowMsg{Contract: a.Contract, GasLimit: a.GasLimit, CodeHash: a.CodeHash})
		}
		if _, err := rt.Execute("instantiate", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
			return b.Instantiate(s, bridge.MessageInfo{}, msg)
		}); err != nil {
			return fmt.Errorf("instantiate: %w", err)
		}
		zap.L().Info("bridge instantiated", zap.String("gov_contract", msg.GovContract), zap.Int("allowlist", len(msg.Allowlist)))
	}

	for _, ch := range config.Config.Bridge.Channels {
		known, err := channelKnown(rt, b, ch.ID)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ch.ID, err)
		}
		if known {
			continue
		}
		open := bridge.ChannelOpenMsg{
			ChannelID:            ch.ID,
			CounterpartyEndpoint: types.IbcEndpoint{PortID: ch.CounterpartyPortID, ChannelID: ch.CounterpartyChannelID},
			ConnectionID:         ch.ConnectionID,
			Order:                bridge.OrderUnordered,
			Version:              types.Ics20Version,
		}
		if _, err := rt.Execute("channel_open", func(s store.KVStore, env bridge.Env) (*bridge.Response, error) {
			return b.OpenChannel(s, open)
		}); err != nil {
			return fmt.Errorf("open channel %s: %w", ch.ID, err)
		}
		zap.L().Info("channel registered", zap.String("channel", ch.ID))
	}
	return nil
}

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	flag.Parse()

	config.Init(*configPath)

	logger, err := newLogger(config.Config.Log.Level, config.Config.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("starting cw20 ics20 bridge")

	// without persistence do not continue
	state, err := newState()
	if err != nil {
		logger.Fatal("cannot open state", zap.Error(err))
	}

	api, err := bridge.NewAddressValidator(config.Config.Bridge.AddressFormat)
	if err != nil {
		logger.Fatal("bad address format", zap.Error(err))
	}
	b := bridge.New(api, bridge.StoredAdmin{}, bridge.WithLogger(logger.Named("bridge")))
	rt := host.NewRuntime(state, host.NewMonotonicClock(), logger.Named("host"))

	if err := bootstrap(rt, b); err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// there are 2 worker threads:
	// * dispatch committed packets to the relayer
	// * API serving HTTP server (serves as main worker thread)
	if config.Config.Relayer.URL != "" {
		rc := relayer.New(config.Config.Relayer.URL, config.Config.Relayer.AuthToken,
			time.Duration(config.Config.Relayer.TimeoutSecs)*time.Second)
		go workers.Worker_dispatchPackets(ctx, rt, rc,
			time.Duration(config.Config.Relayer.PollSeconds)*time.Second, config.Config.Relayer.BatchSize)
	} else {
		logger.Warn("no relayer configured, packets stay in the outbox")
	}

	workers.Worker_HTTP(workers.NewRouter(&handlers.API{Runtime: rt, Bridge: b}), stop)
}
