package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"

	cmdcommon "boscoin.io/ballot/cmd/ballot/common"
	"boscoin.io/ballot/lib/block"
	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/common/keypair"
	"boscoin.io/ballot/lib/engine"
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/metrics"
	"boscoin.io/ballot/lib/network"
	"boscoin.io/ballot/lib/network/httpcache"
	"boscoin.io/ballot/lib/node/runner"
	"boscoin.io/ballot/lib/storage"
)

const (
	defaultLogLevel         logging.Lvl   = logging.LvlInfo
	defaultNTPSyncInterval  time.Duration = time.Minute
	defaultHTTPCachePoolMax int           = 10000
)

var (
	flagConfigFile          string = common.GetENVValue("BALLOT_CONFIG", "")
	flagKPSecretSeed        string = common.GetENVValue("BALLOT_SECRET_SEED", "")
	flagNetworkID           string = common.GetENVValue("BALLOT_NETWORK_ID", "")
	flagLogLevel            string = common.GetENVValue("BALLOT_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput           string = common.GetENVValue("BALLOT_LOG_OUTPUT", "")
	flagVerbose             bool   = common.GetENVValue("BALLOT_VERBOSE", "0") == "1"
	flagEndpointString      string = common.GetENVValue("BALLOT_ENDPOINT", common.DefaultEndpoint)
	flagStorageConfigString string
	flagTLSCertFile         string = common.GetENVValue("BALLOT_TLS_CERT", "")
	flagTLSKeyFile          string = common.GetENVValue("BALLOT_TLS_KEY", "")
	flagValidators          string = common.GetENVValue("BALLOT_VALIDATORS", "")
	flagBlockTime           string = common.GetENVValue("BALLOT_BLOCK_TIME", common.DefaultBlockTime.String())
	flagTxsLimit            int    = common.DefaultTxsLimit
	flagTxPoolLimit         int    = common.DefaultTxPoolLimit
	flagInitialVoterWeight  uint64 = common.DefaultInitialVoterWeight
	flagMaxProposals        int    = common.DefaultMaxProposals
	flagRateLimitAPI        string = common.GetENVValue("BALLOT_RATE_LIMIT_API", common.DefaultRateLimitAPI)
	flagAPICacheSize        int    = common.DefaultAPICacheSize
	flagHTTPCacheAdapter    string = common.GetENVValue("BALLOT_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   int    = defaultHTTPCachePoolMax
	flagHTTPCacheRedisAddrs string = common.GetENVValue("BALLOT_HTTP_CACHE_REDIS_ADDRS", "")
	flagNTPServer           string = common.GetENVValue("BALLOT_NTP_SERVER", "")
	flagJSONRPC             bool   = common.GetENVValue("BALLOT_JSONRPC", "0") == "1"
	flagDebugPProf          bool   = common.GetENVValue("BALLOT_DEBUG_PPROF", "0") == "1"
)

var (
	nodeCmd *cobra.Command

	kp            *keypair.Full
	conf          common.Config
	nodeEndpoint  *common.Endpoint
	storageConfig *storage.Config
	cacheAdapter  httpcache.Adapter
	logLevel      logging.Lvl
	logHandler    logging.Handler
	log           logging.Logger = logging.New("module", "main")
)

func init() {
	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run ballot node",
		Run: func(c *cobra.Command, args []string) {
			if len(flagConfigFile) > 0 {
				if err := loadConfigFile(c.Flags(), flagConfigFile); err != nil {
					cmdcommon.PrintFlagsError(c, "--config", err)
				}
			}

			if flagName, err := parseFlagsNode(); err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			if err := runNode(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		},
	}

	flagStorageConfigString = common.GetENVValue("BALLOT_STORAGE", defaultStorage())

	nodeCmd.Flags().StringVar(&flagConfigFile, "config", flagConfigFile, "yaml config file; the keys are the flag names")
	nodeCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed of this node")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, {memory://, file:///path}")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagValidators, "validators", flagValidators, "validator addresses in order: <address> [<address>...]")
	nodeCmd.Flags().StringVar(&flagBlockTime, "block-time", flagBlockTime, "block time")
	nodeCmd.Flags().IntVar(&flagTxsLimit, "txs-limit", flagTxsLimit, "transactions limit in a block")
	nodeCmd.Flags().IntVar(&flagTxPoolLimit, "txpool-limit", flagTxPoolLimit, "transaction pool limit")
	nodeCmd.Flags().Uint64Var(&flagInitialVoterWeight, "initial-voter-weight", flagInitialVoterWeight, "weight of new voter")
	nodeCmd.Flags().IntVar(&flagMaxProposals, "max-proposals", flagMaxProposals, "max proposals in a voting")
	nodeCmd.Flags().StringVar(&flagRateLimitAPI, "rate-limit-api", flagRateLimitAPI, "rate limit of api: <limit>-<period>, like '100-S'")
	nodeCmd.Flags().IntVar(&flagAPICacheSize, "api-cache-size", flagAPICacheSize, "number of parsed proposal lists kept by api")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter, {'', mem, redis}")
	nodeCmd.Flags().IntVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size of mem adapter")
	nodeCmd.Flags().StringVar(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", flagHTTPCacheRedisAddrs, "redis addresses of http cache: <addr>[,<addr>...]")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp-server", flagNTPServer, "ntp server to correct the block timestamps")
	nodeCmd.Flags().BoolVar(&flagJSONRPC, "jsonrpc", flagJSONRPC, "serve jsonrpc for storage inspection")
	nodeCmd.Flags().BoolVar(&flagDebugPProf, "debug-pprof", flagDebugPProf, "serve pprof")

	rootCmd.AddCommand(nodeCmd)
}

func defaultStorage() string {
	currentDirectory, err := os.Getwd()
	if err != nil {
		return common.DefaultStorage
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		return common.DefaultStorage
	}

	return fmt.Sprintf("file://%s/db", currentDirectory)
}

func parseFlagValidators(v string) (validators []string, err error) {
	for _, address := range strings.Fields(strings.Replace(v, ",", " ", -1)) {
		if _, err = keypair.Parse(address); err != nil {
			err = fmt.Errorf("invalid address, %q: %v", address, err)
			return
		}
		if _, found := common.InStringArray(validators, address); found {
			err = fmt.Errorf("duplicated address found: %q", address)
			return
		}
		validators = append(validators, address)
	}

	return
}

func parseLogHandler(output string) (handler logging.Handler, err error) {
	if len(output) < 1 {
		var formatter logging.Format
		if isatty.IsTerminal(os.Stdout.Fd()) {
			formatter = logging.TerminalFormat()
		} else {
			formatter = common.JsonFormatEx(false, true)
		}
		handler = logging.StreamHandler(os.Stdout, formatter)
	} else if handler, err = logging.FileHandler(output, common.JsonFormatEx(false, true)); err != nil {
		return
	}

	handler = logging.CallerFileHandler(handler)

	return
}

// parseFlagsNode returns the name of the wrong flag with the error.
func parseFlagsNode() (string, error) {
	var err error

	if len(flagNetworkID) < 1 {
		return "--network-id", errors.New("must be given")
	}
	if len(flagKPSecretSeed) < 1 {
		return "--secret-seed", errors.New("must be given")
	}

	var parsedKP keypair.KP
	if parsedKP, err = keypair.Parse(flagKPSecretSeed); err != nil {
		return "--secret-seed", err
	}
	var ok bool
	if kp, ok = parsedKP.(*keypair.Full); !ok {
		return "--secret-seed", errors.New("not a secret seed")
	}

	if nodeEndpoint, err = common.ParseEndpoint(flagEndpointString); err != nil {
		return "--endpoint", err
	}

	queries := nodeEndpoint.Query()
	if len(flagTLSCertFile) > 0 || len(flagTLSKeyFile) > 0 {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			return "--tls-cert", err
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			return "--tls-key", err
		}
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
	}
	if len(queries.Get("IdleTimeout")) < 1 {
		queries.Set("IdleTimeout", "3s")
	}
	nodeEndpoint.RawQuery = queries.Encode()
	flagEndpointString = nodeEndpoint.String()

	conf = common.NewConfig([]byte(flagNetworkID))

	if conf.Validators, err = parseFlagValidators(flagValidators); err != nil {
		return "--validators", err
	}
	if len(conf.Validators) < 1 {
		return "--validators", errors.New("must be given")
	}

	if conf.BlockTime, err = time.ParseDuration(flagBlockTime); err != nil {
		return "--block-time", err
	} else if conf.BlockTime <= 0 {
		return "--block-time", errors.New("must be positive")
	}

	if flagTxsLimit < 1 {
		return "--txs-limit", errors.New("must be positive")
	}
	conf.TxsLimit = flagTxsLimit

	if flagTxPoolLimit < 1 {
		return "--txpool-limit", errors.New("must be positive")
	}
	conf.TxPoolLimit = flagTxPoolLimit

	if flagInitialVoterWeight < 1 {
		return "--initial-voter-weight", errors.New("must be positive")
	}
	conf.InitialVoterWeight = flagInitialVoterWeight

	if flagMaxProposals < 1 {
		return "--max-proposals", errors.New("must be positive")
	}
	conf.MaxProposals = flagMaxProposals

	conf.RateLimitAPI = flagRateLimitAPI
	conf.APICacheSize = flagAPICacheSize

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		return "--storage", err
	}

	cacheAdapter = nil
	if len(flagHTTPCacheAdapter) > 0 {
		cacheAdapter, err = httpcache.NewAdapter(flagHTTPCacheAdapter, flagHTTPCachePoolSize, flagHTTPCacheRedisAddrs)
		if err != nil {
			return "--http-cache-adapter", err
		}
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return "--log-level", err
	}
	if logHandler, err = parseLogHandler(flagLogOutput); err != nil {
		return "--log-output", err
	}
	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	}

	runner.EnableJSONRPC = flagJSONRPC
	runner.DebugPProf = flagDebugPProf

	if flagVerbose {
		http2.VerboseLogs = true
	}

	return "", nil
}

func setLogging() {
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))

	common.SetLogging(logLevel, logHandler)
	merkle.SetLogging(logLevel, logHandler)
	block.SetLogging(logLevel, logHandler)
	engine.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	httpcache.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
}

func printFlags() {
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\taddress", kp.Address())
	parsedFlags = append(parsedFlags, "\n\tendpoint", flagEndpointString)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tblock-time", conf.BlockTime)
	parsedFlags = append(parsedFlags, "\n\ttxs-limit", conf.TxsLimit)
	parsedFlags = append(parsedFlags, "\n\ttxpool-limit", conf.TxPoolLimit)
	parsedFlags = append(parsedFlags, "\n\tinitial-voter-weight", conf.InitialVoterWeight)
	parsedFlags = append(parsedFlags, "\n\tmax-proposals", conf.MaxProposals)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", conf.RateLimitAPI)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)
	parsedFlags = append(parsedFlags, "\n\tntp-server", flagNTPServer)
	parsedFlags = append(parsedFlags, "\n\tjsonrpc", flagJSONRPC)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	for i, v := range conf.Validators {
		parsedFlags = append(parsedFlags, fmt.Sprintf("\n\tvalidator#%d", i), v)
	}

	log.Debug("parsed flags:", parsedFlags...)
}

func runNode() error {
	setLogging()
	metrics.InitPrometheusMetrics()
	metrics.SetVersion()

	log.Info("Starting Ballot")
	printFlags()

	st := &storage.LevelDBBackend{}
	if err := st.Init(storageConfig); err != nil {
		log.Crit("failed to initialize storage", "error", err)
		return err
	}
	defer st.Close()

	var logOutput io.Writer = os.Stdout
	if flagVerbose {
		logOutput = os.Stderr
	}
	serverConfig, err := network.NewHTTP2ServerConfigFromEndpoint(nodeEndpoint, logOutput)
	if err != nil {
		log.Crit("failed to create network", "error", err)
		return err
	}
	server := network.NewHTTP2Server(serverConfig)

	var clock runner.Clock
	var ntpClock *runner.NTPClock
	if len(flagNTPServer) > 0 {
		ntpClock = runner.NewNTPClock(flagNTPServer)
		ntpClock.Sync()
		clock = ntpClock
	}

	nr, err := runner.NewNodeRunner(conf, kp.Address(), st, server, clock, cacheAdapter)
	if err != nil {
		log.Crit("failed to create node runner", "error", err)
		return err
	}
	defer nr.Close()

	if err := nr.Ready(); err != nil {
		log.Crit("failed to prepare node runner", "error", err)
		return err
	}

	var g run.Group
	{
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return nr.RunBlockLoop(ctx)
		}, func(error) {
			cancel()
		})
	}
	{
		g.Add(func() error {
			if err := server.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	if ntpClock != nil {
		cancel := make(chan struct{})
		g.Add(func() error {
			ticker := time.NewTicker(defaultNTPSyncInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					ntpClock.Sync()
				case <-cancel:
					return nil
				}
			}
		}, func(error) {
			close(cancel)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			err := cmdcommon.Interrupt(cancel)
			log.Info("stopping node", "reason", err)
			return nil
		}, func(error) {
			close(cancel)
		})
	}

	return g.Run()
}
