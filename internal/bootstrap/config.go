// Package bootstrap wires the bulk transfer service together: configuration
// from environment variables, the Postgres connection, the queue backend,
// the remote gateway, and the HTTP server plus worker pools that run it all.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mpostgres"
	"github.com/r-o-main/bulk-transfer-api/common/mrabbitmq"
	"github.com/r-o-main/bulk-transfer-api/common/mzap"
	httpin "github.com/r-o-main/bulk-transfer-api/internal/bootstrap/http"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/gateway"
	"github.com/r-o-main/bulk-transfer-api/internal/postgres"
	"github.com/r-o-main/bulk-transfer-api/internal/queue"
	"github.com/r-o-main/bulk-transfer-api/internal/services/command"
	"github.com/r-o-main/bulk-transfer-api/internal/services/query"
)

const ApplicationName = "bulk-transfer-api"

// QueueBackendMemory selects the in-process FIFO queues plus the HTTP
// broker stub; QueueBackendRabbitMQ selects durable RabbitMQ queues.
const (
	QueueBackendMemory   = "memory"
	QueueBackendRabbitMQ = "rabbitmq"
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	EnvName             string `env:"ENV_NAME"`
	LogLevel            string `env:"LOG_LEVEL"`
	Version             string `env:"VERSION"`
	ServerAddress       string `env:"SERVER_ADDRESS"`
	PrimaryDBHost       string `env:"DB_HOST"`
	PrimaryDBUser       string `env:"DB_USER"`
	PrimaryDBPassword   string `env:"DB_PASSWORD"`
	PrimaryDBName       string `env:"DB_NAME"`
	PrimaryDBPort       string `env:"DB_PORT"`
	ReplicaDBHost       string `env:"DB_REPLICA_HOST"`
	ReplicaDBUser       string `env:"DB_REPLICA_USER"`
	ReplicaDBPassword   string `env:"DB_REPLICA_PASSWORD"`
	ReplicaDBName       string `env:"DB_REPLICA_NAME"`
	ReplicaDBPort       string `env:"DB_REPLICA_PORT"`
	MigrationsPath      string `env:"MIGRATIONS_PATH"`
	QueueBackend        string `env:"QUEUE_BACKEND"`
	RabbitMQHost        string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost    string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQUser        string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass        string `env:"RABBITMQ_DEFAULT_PASS"`
	TransferWorkerCount int    `env:"TRANSFER_WORKERS"`
	FinalizeWorkerCount int    `env:"FINALIZE_WORKERS"`
	TransferGatewayURL  string `env:"TRANSFER_GATEWAY_URL"`
}

// InitService assembles every component of the bulk transfer service.
func InitService() *Service {
	cfg := &Config{}

	if err := common.SetConfigFromEnvVars(cfg); err != nil {
		panic(err)
	}

	logger := mzap.InitializeLogger()

	postgreSourcePrimary := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.PrimaryDBHost, cfg.PrimaryDBUser, cfg.PrimaryDBPassword, cfg.PrimaryDBName, cfg.PrimaryDBPort)

	postgreSourceReplica := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.ReplicaDBHost, cfg.ReplicaDBUser, cfg.ReplicaDBPassword, cfg.ReplicaDBName, cfg.ReplicaDBPort)

	postgresConnection := &mpostgres.PostgresConnection{
		ConnectionStringPrimary: postgreSourcePrimary,
		ConnectionStringReplica: postgreSourceReplica,
		PrimaryDBName:           cfg.PrimaryDBName,
		ReplicaDBName:           cfg.ReplicaDBName,
		MigrationsPath:          cfg.MigrationsPath,
	}

	txRunner := postgres.NewConnectionTxRunner(postgresConnection)
	accountPostgreSQLRepository := postgres.NewAccountPostgreSQLRepository(postgresConnection)
	bulkRequestPostgreSQLRepository := postgres.NewBulkRequestPostgreSQLRepository(postgresConnection)
	transactionPostgreSQLRepository := postgres.NewTransactionPostgreSQLRepository(postgresConnection)

	var (
		transferQueue queue.Queue[domain.TransferJob]
		finalizeQueue queue.Queue[domain.FinalizeBulkJob]
		brokerHandler *httpin.BrokerHandler
	)

	switch cfg.QueueBackend {
	case QueueBackendRabbitMQ:
		rabbitSource := fmt.Sprintf("amqp://%s:%s@%s:%s",
			cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPortHost)

		rabbitMQConnection := &mrabbitmq.RabbitMQConnection{
			ConnectionStringSource: rabbitSource,
			Logger:                 logger,
		}

		ctx := common.ContextWithLogger(context.Background(), logger)

		var err error

		transferQueue, err = queue.NewRabbitMQQueue[domain.TransferJob](ctx, rabbitMQConnection, queue.TransferQueueName)
		if err != nil {
			panic(err)
		}

		finalizeQueue, err = queue.NewRabbitMQQueue[domain.FinalizeBulkJob](ctx, rabbitMQConnection, queue.FinalizeQueueName)
		if err != nil {
			panic(err)
		}
	default:
		memTransfer := queue.NewMemoryQueue[domain.TransferJob]()
		memFinalize := queue.NewMemoryQueue[domain.FinalizeBulkJob]()
		transferQueue = memTransfer
		finalizeQueue = memFinalize

		brokerHandler = &httpin.BrokerHandler{
			TransferQueue: memTransfer,
			FinalizeQueue: memFinalize,
		}
	}

	var remoteGateway gateway.RemoteTransferGateway
	if cfg.TransferGatewayURL != "" {
		remoteGateway = gateway.NewHTTPGateway(cfg.TransferGatewayURL)
	} else {
		remoteGateway = gateway.NewFakeGateway()
	}

	commandUseCase := &command.UseCase{
		Tx:              txRunner,
		AccountRepo:     accountPostgreSQLRepository,
		BulkRequestRepo: bulkRequestPostgreSQLRepository,
		TransactionRepo: transactionPostgreSQLRepository,
		TransferQueue:   transferQueue,
		FinalizeQueue:   finalizeQueue,
		Gateway:         remoteGateway,
	}

	queryUseCase := &query.UseCase{
		Tx:              txRunner,
		BulkRequestRepo: bulkRequestPostgreSQLRepository,
	}

	bulkTransferHandler := &httpin.BulkTransferHandler{
		Command: commandUseCase,
		Query:   queryUseCase,
	}

	app := httpin.NewRouter(logger, cfg.Version, bulkTransferHandler, brokerHandler)

	server := NewServer(cfg, app, logger)

	workers := NewWorkers(cfg, commandUseCase, transferQueue, finalizeQueue, logger)

	return &Service{
		Server:  server,
		Workers: workers,
		Logger:  logger,
	}
}
