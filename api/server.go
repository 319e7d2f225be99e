package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tharindraj/ctrl-alt-rock-voting/api/controllers"
	"github.com/tharindraj/ctrl-alt-rock-voting/api/transport"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
	"github.com/tharindraj/ctrl-alt-rock-voting/scoring"
	"github.com/tharindraj/ctrl-alt-rock-voting/storage"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	ctx := context.Background()

	store, err := s.newDocumentStore(ctx)
	if err != nil {
		logging.Log.Errorf("failed to create document store: %v", err)
		panic("failed to create document store")
	}

	r, err := s.Build(ctx, store)
	if err != nil {
		logging.Log.Errorf("failed to build router: %v", err)
		panic("failed to build router")
	}

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

func (s *Server) newDocumentStore(ctx context.Context) (storage.DocumentStore, error) {
	switch s.config.Backend {
	case "", "file":
		logging.Log.Infof("STORE: using JSON files in %s", s.config.DataDir)
		return storage.NewFileDocumentStore(s.config.DataDir)
	case "dynamo":
		cfg, err := s.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			if s.config.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.config.Endpoint)
			}
		})
		logging.Log.Infof("STORE: using DynamoDB table %s", s.config.TableName)
		return &storage.DynamoDocumentStore{Client: client, TableName: s.config.TableName}, nil
	case "s3":
		if s.config.Bucket == "" {
			return nil, fmt.Errorf("storage.bucket is required for the s3 backend")
		}
		cfg, err := s.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			if s.config.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.config.Endpoint)
				o.UsePathStyle = true
			}
		})
		logging.Log.Infof("STORE: using S3 bucket %s", s.config.Bucket)
		return &storage.S3DocumentStore{Client: client, Bucket: s.config.Bucket, Prefix: s.config.Prefix}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: s.config.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis at %s: %w", s.config.RedisAddr, err)
		}
		logging.Log.Infof("STORE: using redis at %s", s.config.RedisAddr)
		return &storage.RedisDocumentStore{Client: client, Prefix: s.config.Prefix}, nil
	case "sqlite", "postgres":
		dsn := s.config.DSN
		if dsn == "" && s.config.Backend == "sqlite" {
			dsn = filepath.Join(s.config.DataDir, "voting.db")
			if err := os.MkdirAll(s.config.DataDir, 0o755); err != nil {
				return nil, err
			}
		}
		logging.Log.Infof("STORE: using %s documents table", s.config.Backend)
		return storage.OpenSQLDocumentStore(ctx, s.config.Backend, dsn)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.config.Backend)
	}
}

func (s *Server) awsConfig(ctx context.Context) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if s.config.Region != "" {
		opts = append(opts, awsconfig.WithRegion(s.config.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

// Build wires repositories, scoring services and controllers onto a new router.
func (s *Server) Build(ctx context.Context, store storage.DocumentStore) (*gin.Engine, error) {
	categoryStorage := storage.NewCategoryStorage(store)
	contestantStorage := storage.NewContestantStorage(store)
	judgeStorage := storage.NewJudgeStorage(store)
	adminStorage := storage.NewAdminStorage(store)
	audienceStorage := storage.NewAudienceStorage(store)
	scoreStorage := &storage.DocumentScoreStorage{Store: store}
	settingsStorage := &storage.DocumentSettingsStorage{
		Store:    store,
		Defaults: storage.ScoreWeights{Judges: s.config.JudgesWeight, Audience: s.config.AudienceWeight},
	}

	if err := s.bootstrapAdmin(ctx, adminStorage); err != nil {
		return nil, err
	}

	judgeEngine := scoring.NewJudgeEngine(scoreStorage, contestantStorage, categoryStorage, settingsStorage)
	voteRecorder := scoring.NewVoteRecorder(scoreStorage, contestantStorage, settingsStorage)
	aggregator := scoring.NewAggregator(categoryStorage, contestantStorage, scoreStorage, settingsStorage)
	publisher := scoring.NewPublisher(settingsStorage, scoreStorage, categoryStorage, aggregator)

	tokens := transport.NewTokenIssuer(s.config.JWTSecret, s.config.TokenTTL, s.config.AdminToken)
	metrics := transport.NewMetrics()
	r := transport.NewRouter(s.config.Mode, metrics)

	//Register controllers
	limiter := transport.NewRateLimiter(s.config.LoginRate, s.config.LoginBurst)
	controllers.NewAuthController(adminStorage, judgeStorage, audienceStorage, tokens, limiter).RegisterRoutes(r)
	controllers.NewCatalogController(categoryStorage, contestantStorage, settingsStorage, tokens).RegisterRoutes(r)
	controllers.NewAdminController(judgeStorage, audienceStorage, tokens).RegisterRoutes(r)
	controllers.NewSettingsController(settingsStorage, tokens).RegisterRoutes(r)
	controllers.NewJudgeController(judgeEngine, judgeStorage, categoryStorage, contestantStorage, scoreStorage, tokens, metrics).RegisterRoutes(r)
	controllers.NewVotingController(voteRecorder, publisher, categoryStorage, contestantStorage, scoreStorage, tokens, metrics).RegisterRoutes(r)
	controllers.NewResultsController(aggregator, publisher, judgeStorage, audienceStorage, tokens).RegisterRoutes(r)

	return r, nil
}

// bootstrapAdmin creates the configured admin account when no admin exists yet.
func (s *Server) bootstrapAdmin(ctx context.Context, admins storage.AdminStorage) error {
	if s.config.AdminUsername == "" || s.config.AdminPassword == "" {
		return nil
	}
	existing, err := admins.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := controllers.HashPassword(s.config.AdminPassword)
	if err != nil {
		return err
	}
	admin := &storage.Admin{
		ID:           storage.NewID(),
		Username:     s.config.AdminUsername,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := admins.Create(ctx, admin); err != nil {
		return err
	}
	logging.Log.Infof("ADMIN: bootstrapped admin account %s", admin.Username)
	return nil
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
